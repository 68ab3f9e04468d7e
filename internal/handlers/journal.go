// journal.go
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
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/moodjournal/internal/services"
	"github.com/localnerve/moodjournal/internal/types"
	"github.com/localnerve/moodjournal/internal/utils"
)

// JournalHandler handles mood, tag and entry routes
type JournalHandler struct {
	Journal  *services.Journal
	PageSize int
}

// SaveEntryRequest is the body of POST /api/entries/today.
// Mood ids accept numbers or numeric strings; tags accept an array or a comma separated string.
type SaveEntryRequest struct {
	Title          string                 `json:"title"`
	Content        string                 `json:"content"`
	PrimaryMoodID  types.FlexID           `json:"primaryMoodId" swaggertype:"integer"`
	SecondaryMood1 types.FlexID           `json:"secondaryMood1Id" swaggertype:"integer"`
	SecondaryMood2 types.FlexID           `json:"secondaryMood2Id" swaggertype:"integer"`
	Tags           types.FlexList[string] `json:"tags" swaggertype:"array,string"`
}

// GetMoods handles GET /api/moods
// @Summary List moods
// @Description List every mood ordered by category then name
// @Tags Journal
// @Produce json
// @Success 200 {array} models.Mood
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /moods [get]
func (h *JournalHandler) GetMoods(c *fiber.Ctx) error {
	moods, err := h.Journal.ListMoods()
	if err != nil {
		return serviceError(c, err, "listMoods")
	}
	return c.Status(fiber.StatusOK).JSON(moods)
}

// GetTags handles GET /api/tags
// @Summary List tags
// @Description List prebuilt tags first, then user tags, each alphabetical
// @Tags Journal
// @Produce json
// @Success 200 {array} models.Tag
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /tags [get]
func (h *JournalHandler) GetTags(c *fiber.Ctx) error {
	tags, err := h.Journal.ListTags()
	if err != nil {
		return serviceError(c, err, "listTags")
	}
	return c.Status(fiber.StatusOK).JSON(tags)
}

// GetEntries handles GET /api/entries?page=&pageSize=
// @Summary List entries
// @Description One page of entries, newest first
// @Tags Journal
// @Produce json
// @Param page query int false "Page number, starting at 1"
// @Param pageSize query int false "Entries per page"
// @Success 200 {array} EntryView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 423 {object} utils.ErrorResponseStruct
// @Router /entries [get]
func (h *JournalHandler) GetEntries(c *fiber.Ctx) error {
	page, err := queryInt(c, "page", 1)
	if err != nil {
		return serviceError(c, err, "getEntries")
	}
	pageSize, err := queryInt(c, "pageSize", h.PageSize)
	if err != nil {
		return serviceError(c, err, "getEntries")
	}

	entries, err := h.Journal.GetPaged(page, pageSize)
	if err != nil {
		return serviceError(c, err, "getEntries")
	}
	return c.Status(fiber.StatusOK).JSON(entryViews(entries))
}

// SearchEntries handles GET /api/entries/search?q=
// @Summary Search entries
// @Description Case-sensitive substring search of titles and content, newest first
// @Tags Journal
// @Produce json
// @Param q query string false "Text to find; empty matches every entry"
// @Success 200 {array} EntryView
// @Failure 423 {object} utils.ErrorResponseStruct
// @Router /entries/search [get]
func (h *JournalHandler) SearchEntries(c *fiber.Ctx) error {
	entries, err := h.Journal.Search(c.Query("q"))
	if err != nil {
		return serviceError(c, err, "searchEntries")
	}
	return c.Status(fiber.StatusOK).JSON(entryViews(entries))
}

// FilterEntries handles GET /api/entries/filter?start=&end=&moodId=&tag=
// @Summary Filter entries
// @Description Entries matching every given filter, newest first
// @Tags Journal
// @Produce json
// @Param start query string false "Earliest date, yyyy-MM-dd"
// @Param end query string false "Latest date, yyyy-MM-dd"
// @Param moodId query int false "Primary mood id; zero or less is ignored"
// @Param tag query string false "Tag name fragment, case-insensitive"
// @Success 200 {array} EntryView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 423 {object} utils.ErrorResponseStruct
// @Router /entries/filter [get]
func (h *JournalHandler) FilterEntries(c *fiber.Ctx) error {
	var opts services.FilterOptions
	var err error

	if opts.Start, err = optionalDateQuery(c, "start"); err != nil {
		return serviceError(c, err, "filterEntries")
	}
	if opts.End, err = optionalDateQuery(c, "end"); err != nil {
		return serviceError(c, err, "filterEntries")
	}
	if opts.MoodID, err = queryInt(c, "moodId", 0); err != nil {
		return serviceError(c, err, "filterEntries")
	}
	opts.TagText = c.Query("tag")

	entries, err := h.Journal.Filter(opts)
	if err != nil {
		return serviceError(c, err, "filterEntries")
	}
	return c.Status(fiber.StatusOK).JSON(entryViews(entries))
}

// GetEntriesInRange handles GET /api/entries/range?start=&end=
// @Summary Entries in a date range
// @Description Entries dated within start and end inclusive, newest first. Defaults to the last 30 days.
// @Tags Journal
// @Produce json
// @Param start query string false "First date, yyyy-MM-dd"
// @Param end query string false "Last date, yyyy-MM-dd"
// @Success 200 {array} EntryView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 423 {object} utils.ErrorResponseStruct
// @Router /entries/range [get]
func (h *JournalHandler) GetEntriesInRange(c *fiber.Ctx) error {
	start, end, err := dateRange(c, h.Journal.Today())
	if err != nil {
		return serviceError(c, err, "getEntriesInRange")
	}

	entries, err := h.Journal.GetEntriesInRange(start, end)
	if err != nil {
		return serviceError(c, err, "getEntriesInRange")
	}
	return c.Status(fiber.StatusOK).JSON(entryViews(entries))
}

// GetEntry handles GET /api/entries/:date
// @Summary Get an entry
// @Description The entry for one calendar date with moods and tags
// @Tags Journal
// @Produce json
// @Param date path string true "Entry date, yyyy-MM-dd"
// @Success 200 {object} EntryView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 423 {object} utils.ErrorResponseStruct
// @Router /entries/{date} [get]
func (h *JournalHandler) GetEntry(c *fiber.Ctx) error {
	date, err := parseDateParam(c, "date")
	if err != nil {
		return serviceError(c, err, "getEntry")
	}

	entry, err := h.Journal.GetEntryByDate(date)
	if err != nil {
		return serviceError(c, err, "getEntry")
	}
	return c.Status(fiber.StatusOK).JSON(entryView(*entry))
}

// SaveToday handles POST /api/entries/today
// @Summary Save today's entry
// @Description Create today's entry or replace its title, content, moods and tags
// @Tags Journal
// @Accept json
// @Produce json
// @Param entry body SaveEntryRequest true "Entry content"
// @Success 200 {object} EntryView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 423 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /entries/today [post]
func (h *JournalHandler) SaveToday(c *fiber.Ctx) error {
	var req SaveEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	entry, err := h.Journal.UpsertToday(services.EntryInput{
		Title:            req.Title,
		Content:          req.Content,
		PrimaryMoodID:    req.PrimaryMoodID.Uint(),
		SecondaryMood1ID: req.SecondaryMood1.Ptr(),
		SecondaryMood2ID: req.SecondaryMood2.Ptr(),
		Tags:             req.Tags.Slice(),
	})
	if err != nil {
		return serviceError(c, err, "saveEntry")
	}
	return c.Status(fiber.StatusOK).JSON(entryView(*entry))
}

// DeleteEntry handles DELETE /api/entries/:date
// @Summary Delete an entry
// @Description Delete the entry for one calendar date and its tag links
// @Tags Journal
// @Produce json
// @Param date path string true "Entry date, yyyy-MM-dd"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 423 {object} utils.ErrorResponseStruct
// @Router /entries/{date} [delete]
func (h *JournalHandler) DeleteEntry(c *fiber.Ctx) error {
	date, err := parseDateParam(c, "date")
	if err != nil {
		return serviceError(c, err, "deleteEntry")
	}

	if err := h.Journal.DeleteEntryByDate(date); err != nil {
		return serviceError(c, err, "deleteEntry")
	}
	return utils.MutationSuccessResponse(c, "Entry deleted")
}
