package handler

import (
	"github.com/prn-tf/chronicle/internal/domain"
)

// entryRequest is the wire representation of entry create/update payloads.
// Date travels as a calendar day (YYYY-MM-DD) in the user's local timezone;
// covers are indices into images selecting cover photos for the save.
type entryRequest struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Date       string   `json:"date"`
	Images     []string `json:"images"`
	Covers     []int    `json:"covers"`
	IsFavorite bool     `json:"is_favorite"`
}

// entryResponse is the wire representation of an entry.
type entryResponse struct {
	ID            string   `json:"id"`
	Date          string   `json:"date"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Images        []string `json:"images"`
	IsLocked      bool     `json:"is_locked"`
	IsFavorite    bool     `json:"is_favorite"`
	IsRetroactive bool     `json:"is_retroactive"`
}

func toEntryResponse(e *domain.Entry) entryResponse {
	images := e.Images
	if images == nil {
		images = []string{}
	}
	return entryResponse{
		ID:            e.ID.String(),
		Date:          domain.DayKey(e.Date),
		CreatedAt:     e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:     e.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		Title:         e.Title,
		Content:       e.Content,
		Images:        images,
		IsLocked:      e.IsLocked,
		IsFavorite:    e.IsFavorite,
		IsRetroactive: e.IsRetroactive,
	}
}

func toEntryResponses(entries []*domain.Entry) []entryResponse {
	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryResponse(e))
	}
	return out
}

// statsResponse is the wire representation of the derived statistics view.
type statsResponse struct {
	TotalEntries        int             `json:"total_entries"`
	TotalWords          int             `json:"total_words"`
	CurrentStreak       int             `json:"current_streak"`
	ActivityCalendar    []bool          `json:"activity_calendar"`
	RetroactiveActivity []bool          `json:"retroactive_activity"`
	MostFrequentWord    string          `json:"most_frequent_word"`
	TotalMediaUploaded  int             `json:"total_media_uploaded"`
	FavoriteEntries     []entryResponse `json:"favorite_entries"`
}

func toStatsResponse(s *domain.Stats) statsResponse {
	return statsResponse{
		TotalEntries:        s.TotalEntries,
		TotalWords:          s.TotalWords,
		CurrentStreak:       s.CurrentStreak,
		ActivityCalendar:    s.ActivityCalendar[:],
		RetroactiveActivity: s.RetroactiveActivity[:],
		MostFrequentWord:    s.MostFrequentWord,
		TotalMediaUploaded:  s.TotalMediaUploaded,
		FavoriteEntries:     toEntryResponses(s.FavoriteEntries),
	}
}

// profileRequest is the wire representation of profile update payloads.
type profileRequest struct {
	Username       string  `json:"username"`
	ProfilePicture *string `json:"profile_picture"`
}

// profileResponse is the wire representation of a profile.
type profileResponse struct {
	UserID         string  `json:"user_id"`
	Username       string  `json:"username"`
	ProfilePicture *string `json:"profile_picture"`
	UpdatedAt      string  `json:"updated_at"`
}

func toProfileResponse(p *domain.Profile) profileResponse {
	return profileResponse{
		UserID:         p.UserID.String(),
		Username:       p.Username,
		ProfilePicture: p.ProfilePicture,
		UpdatedAt:      p.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
