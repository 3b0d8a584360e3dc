package domain

import "time"

type URLSubmission struct {
	OriginalURL        string `json:"originalUrl"`
	ValidityPeriod     *int   `json:"validityPeriod,omitempty"`
	PreferredShortcode string `json:"preferredShortcode,omitempty"`
}

type ShortenedURL struct {
	ID          string    `json:"id"`
	OriginalURL string    `json:"originalUrl"`
	ShortURL    string    `json:"shortUrl"`
	ShortCode   string    `json:"shortCode"`
	CreatedAt   Timestamp `json:"createdAt"`
	ExpiryDate  Timestamp `json:"expiryDate"`
	IsExpired   bool      `json:"isExpired"`
	ClickCount  int64     `json:"clickCount"`
}

// ExpiredAt reports whether the backend flagged the URL as expired or its
// expiry date has already passed at now.
func (u ShortenedURL) ExpiredAt(now time.Time) bool {
	if u.IsExpired {
		return true
	}
	return u.ExpiryDate.Valid() && u.ExpiryDate.Time.Before(now)
}

type ClickDetail struct {
	ID        string    `json:"id"`
	Timestamp Timestamp `json:"timestamp"`
	Source    string    `json:"source"`
	Location  string    `json:"location,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
}

type URLStatistics struct {
	ShortenedURL ShortenedURL  `json:"shortenedUrl"`
	ClickDetails []ClickDetail `json:"clickDetails"`
}
