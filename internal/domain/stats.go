package domain

// ActivityWindow is the number of days covered by the activity calendar,
// counting backward from today.
const ActivityWindow = 28

// MaxFavoriteEntries caps the favorite-entry shortlist in the stats view.
const MaxFavoriteEntries = 5

// NoFrequentWord is returned as MostFrequentWord when no qualifying token
// exists in any entry.
const NoFrequentWord = "None"

// Stats is the derived statistics view over a user's full entry set. It is
// never persisted; every field is a pure function of the entry list and the
// current date.
type Stats struct {
	// TotalEntries is the size of the entry set.
	TotalEntries int `json:"total_entries"`

	// TotalWords is the sum of whitespace-separated tokens over all entry
	// content.
	TotalWords int `json:"total_words"`

	// CurrentStreak counts consecutive calendar days ending today, each
	// having at least one non-retroactive entry.
	CurrentStreak int `json:"current_streak"`

	// ActivityCalendar marks days with any entry; index 0 is today, index
	// i is today minus i days.
	ActivityCalendar [ActivityWindow]bool `json:"activity_calendar"`

	// RetroactiveActivity marks days whose entries include a retroactive
	// one, parallel to ActivityCalendar.
	RetroactiveActivity [ActivityWindow]bool `json:"retroactive_activity"`

	// MostFrequentWord is the highest-frequency qualifying content token,
	// or NoFrequentWord when none exists.
	MostFrequentWord string `json:"most_frequent_word"`

	// TotalMediaUploaded is the sum of image counts over all entries.
	TotalMediaUploaded int `json:"total_media_uploaded"`

	// FavoriteEntries is the favorite shortlist, at most
	// MaxFavoriteEntries, in encounter order.
	FavoriteEntries []*Entry `json:"favorite_entries"`
}
