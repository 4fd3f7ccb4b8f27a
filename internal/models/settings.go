package models

import "github.com/uptrace/bun"

// Settings is the single authoritative event-configuration row. There is no
// hard singleton constraint; the first row wins and is created lazily with
// defaults on first read.
type Settings struct {
	bun.BaseModel `bun:"table:settings"`

	ID                   int64  `bun:"id,pk,autoincrement" json:"id"`
	EventName            string `bun:"event_name,nullzero" json:"eventName"`
	EventNameLine2       string `bun:"event_name_line2,nullzero" json:"eventNameLine2"`
	FamilyName           string `bun:"family_name,nullzero" json:"familyName"`
	FamilyIntro          string `bun:"family_intro,nullzero" json:"familyIntro"`
	EventDate            string `bun:"event_date,nullzero" json:"eventDate"`
	EventTime            string `bun:"event_time,nullzero" json:"eventTime"`
	LocationName         string `bun:"location_name,nullzero" json:"locationName"`
	GoogleMapsURL        string `bun:"google_maps_url,nullzero" json:"googleMapsUrl"`
	WazeURL              string `bun:"waze_url,nullzero" json:"wazeUrl"`
	HeroImageURL         string `bun:"hero_image_url,nullzero" json:"heroImageUrl"`
	MusicURL             string `bun:"music_url,nullzero" json:"musicUrl"`
	MusicTitle           string `bun:"music_title,nullzero" json:"musicTitle"`
	FooterText           string `bun:"footer_text,nullzero" json:"footerText"`
	LuckyDrawEnabled     bool   `bun:"lucky_draw_enabled,notnull,default:true" json:"luckyDrawEnabled"`
	ResponseAttending    string `bun:"response_attending,nullzero" json:"responseAttending"`
	ResponseMaybe        string `bun:"response_maybe,nullzero" json:"responseMaybe"`
	ResponseNotAttending string `bun:"response_not_attending,nullzero" json:"responseNotAttending"`
}

// SettingsUpdate carries a partial update: nil fields are left untouched.
type SettingsUpdate struct {
	EventName            *string `json:"eventName"`
	EventNameLine2       *string `json:"eventNameLine2"`
	FamilyName           *string `json:"familyName"`
	FamilyIntro          *string `json:"familyIntro"`
	EventDate            *string `json:"eventDate"`
	EventTime            *string `json:"eventTime"`
	LocationName         *string `json:"locationName"`
	GoogleMapsURL        *string `json:"googleMapsUrl"`
	WazeURL              *string `json:"wazeUrl"`
	HeroImageURL         *string `json:"heroImageUrl"`
	MusicURL             *string `json:"musicUrl"`
	MusicTitle           *string `json:"musicTitle"`
	FooterText           *string `json:"footerText"`
	LuckyDrawEnabled     *bool   `json:"luckyDrawEnabled"`
	ResponseAttending    *string `json:"responseAttending"`
	ResponseMaybe        *string `json:"responseMaybe"`
	ResponseNotAttending *string `json:"responseNotAttending"`
}

// Apply merges the provided fields onto s.
func (u SettingsUpdate) Apply(s *Settings) {
	if u.EventName != nil {
		s.EventName = *u.EventName
	}
	if u.EventNameLine2 != nil {
		s.EventNameLine2 = *u.EventNameLine2
	}
	if u.FamilyName != nil {
		s.FamilyName = *u.FamilyName
	}
	if u.FamilyIntro != nil {
		s.FamilyIntro = *u.FamilyIntro
	}
	if u.EventDate != nil {
		s.EventDate = *u.EventDate
	}
	if u.EventTime != nil {
		s.EventTime = *u.EventTime
	}
	if u.LocationName != nil {
		s.LocationName = *u.LocationName
	}
	if u.GoogleMapsURL != nil {
		s.GoogleMapsURL = *u.GoogleMapsURL
	}
	if u.WazeURL != nil {
		s.WazeURL = *u.WazeURL
	}
	if u.HeroImageURL != nil {
		s.HeroImageURL = *u.HeroImageURL
	}
	if u.MusicURL != nil {
		s.MusicURL = *u.MusicURL
	}
	if u.MusicTitle != nil {
		s.MusicTitle = *u.MusicTitle
	}
	if u.FooterText != nil {
		s.FooterText = *u.FooterText
	}
	if u.LuckyDrawEnabled != nil {
		s.LuckyDrawEnabled = *u.LuckyDrawEnabled
	}
	if u.ResponseAttending != nil {
		s.ResponseAttending = *u.ResponseAttending
	}
	if u.ResponseMaybe != nil {
		s.ResponseMaybe = *u.ResponseMaybe
	}
	if u.ResponseNotAttending != nil {
		s.ResponseNotAttending = *u.ResponseNotAttending
	}
}

// DefaultSettings returns the record created on first read when no settings
// row exists yet.
func DefaultSettings() Settings {
	return Settings{
		EventName:            "Rumah Terbuka & Akikah",
		FamilyName:           "Keluarga Hj. Ahmad & Hjh. Sarah",
		EventDate:            "Sabtu, 25 Nov 2024",
		EventTime:            "11:00 PG - 4:00 PTG",
		LocationName:         "Dewan Seri Kenangan, KL",
		GoogleMapsURL:        "https://maps.google.com",
		WazeURL:              "https://waze.com",
		HeroImageURL:         "https://images.unsplash.com/photo-1519167758481-83f550bb49b3?q=80&w=2000&auto=format&fit=crop",
		FooterText:           "© 2024 Majlis Akikah & Rumah Terbuka",
		LuckyDrawEnabled:     true,
		ResponseAttending:    "Terima kasih! Kami tidak sabar untuk bertemu anda di majlis nanti.",
		ResponseMaybe:        "Terima kasih atas maklum balas. Kami harap dapat bertemu anda!",
		ResponseNotAttending: "Terima kasih atas maklum balas. Semoga dapat bertemu di lain kesempatan.",
	}
}
