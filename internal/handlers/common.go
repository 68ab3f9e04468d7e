// common.go
//
// A local-first mood journal data service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of moodjournal.
// moodjournal is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// moodjournal is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with moodjournal.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/moodjournal/internal/services"
	"github.com/localnerve/moodjournal/internal/utils"
	"github.com/rs/zerolog/log"
)

// defaultRangeDays is the span of a date range when the caller gives no start
const defaultRangeDays = 30

// parseDateParam reads a required yyyy-MM-dd route parameter
func parseDateParam(c *fiber.Ctx, name string) (time.Time, error) {
	return services.ParseDate(c.Params(name))
}

// optionalDateQuery reads an optional yyyy-MM-dd query parameter
func optionalDateQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	d, err := services.ParseDate(raw)
	if err != nil {
		return nil, &services.ValidationError{Field: name, Message: "expected a date formatted as yyyy-MM-dd"}
	}
	return &d, nil
}

// dateRange reads start and end query parameters. end defaults to today and
// start to the defaultRangeDays days ending at end.
func dateRange(c *fiber.Ctx, today time.Time) (time.Time, time.Time, error) {
	start, err := optionalDateQuery(c, "start")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := optionalDateQuery(c, "end")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	to := today
	if end != nil {
		to = *end
	}
	from := to.AddDate(0, 0, -(defaultRangeDays - 1))
	if start != nil {
		from = *start
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, &services.ValidationError{Field: "start", Message: "must not be after end"}
	}
	return from, to, nil
}

// queryInt reads an optional integer query parameter
func queryInt(c *fiber.Ctx, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &services.ValidationError{Field: name, Message: "expected an integer"}
	}
	return n, nil
}

// serviceError renders a service failure in the standard error envelope
func serviceError(c *fiber.Ctx, err error, op string) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return utils.BadRequestResponse(c, verr.Error())
	case errors.Is(err, services.ErrEntryNotFound):
		return utils.NotFoundResponse(c, err.Error())
	}

	log.Error().Err(err).Str("op", op).Str("url", c.OriginalURL()).Msg("request failed")
	return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, op)
}
