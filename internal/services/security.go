package services

import (
	"errors"
	"strings"
	"sync"

	"github.com/localnerve/moodjournal/internal/metrics"
	"github.com/localnerve/moodjournal/internal/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Hasher produces and checks salted secret digests
type Hasher interface {
	Hash(secret string) (string, error)
	Verify(secret, digest string) bool
}

// BcryptHasher hashes with bcrypt. A zero Cost uses bcrypt.DefaultCost.
type BcryptHasher struct {
	Cost int
}

// Hash returns a salted bcrypt digest of secret
func (h BcryptHasher) Hash(secret string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether secret matches digest
func (h BcryptHasher) Verify(secret, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(secret)) == nil
}

// LockState is the unlock state of a running app
type LockState int

const (
	// Locked is the state at process start
	Locked LockState = iota
	// Unlocked is entered after a successful PIN check
	Unlocked
)

func (s LockState) String() string {
	if s == Unlocked {
		return "unlocked"
	}
	return "locked"
}

// Session holds the in-memory lock state. It is never persisted.
type Session struct {
	mu    sync.RWMutex
	state LockState
}

// NewSession returns a Locked session
func NewSession() *Session {
	return &Session{state: Locked}
}

// State returns the current lock state
func (s *Session) State() LockState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsUnlocked reports whether the session is Unlocked
func (s *Session) IsUnlocked() bool {
	return s.State() == Unlocked
}

// MarkUnlocked moves the session to Unlocked
func (s *Session) MarkUnlocked() {
	s.mu.Lock()
	s.state = Unlocked
	s.mu.Unlock()
}

// Lock moves the session to Locked
func (s *Session) Lock() {
	s.mu.Lock()
	s.state = Locked
	s.mu.Unlock()
}

// Security manages the optional PIN and the session lock
type Security struct {
	DB      *gorm.DB
	Hasher  Hasher
	Session *Session
}

// NewSecurity creates a Security with a Locked session
func NewSecurity(db *gorm.DB, hasher Hasher) *Security {
	return &Security{DB: db, Hasher: hasher, Session: NewSession()}
}

func (s *Security) settings() (models.AppSetting, error) {
	var row models.AppSetting
	err := s.DB.Session(&gorm.Session{Logger: s.DB.Logger.LogMode(logger.Silent)}).
		Where("id = ?", models.SettingsID).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.AppSetting{ID: models.SettingsID}, nil
	}
	return row, err
}

// HasPin reports whether a PIN digest is stored
func (s *Security) HasPin() (bool, error) {
	row, err := s.settings()
	if err != nil {
		return false, err
	}
	return row.HasPin(), nil
}

// SetPin stores a salted digest of pin and locks the session
func (s *Security) SetPin(pin string) error {
	if strings.TrimSpace(pin) == "" {
		return &ValidationError{Field: "pin", Message: "must not be blank"}
	}

	digest, err := s.Hasher.Hash(pin)
	if err != nil {
		return persistenceFailure("hash pin", err)
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.AppSetting{}).Where("id = ?", models.SettingsID).Update("pin_hash", digest)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}
		return tx.Create(&models.AppSetting{ID: models.SettingsID, PinHash: &digest}).Error
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to store pin")
		return persistenceFailure("set pin", err)
	}

	s.Session.Lock()
	log.Info().Msg("pin updated, session locked")
	return nil
}

// VerifyPin checks pin against the stored digest. With no PIN stored every pin passes.
func (s *Security) VerifyPin(pin string) (bool, error) {
	row, err := s.settings()
	if err != nil {
		return false, err
	}
	if !row.HasPin() {
		return true, nil
	}

	ok := s.Hasher.Verify(pin, *row.PinHash)
	result := "failed"
	if ok {
		result = "ok"
	}
	metrics.PinVerifications.WithLabelValues(result).Inc()
	return ok, nil
}

// Unlock verifies pin and marks the session Unlocked when it matches
func (s *Security) Unlock(pin string) (bool, error) {
	ok, err := s.VerifyPin(pin)
	if err != nil || !ok {
		return false, err
	}
	s.Session.MarkUnlocked()
	return true, nil
}

// Locked reports whether protected operations must be refused: a PIN exists
// and the session has not been unlocked
func (s *Security) Locked() (bool, error) {
	if s.Session.IsUnlocked() {
		return false, nil
	}
	return s.HasPin()
}
