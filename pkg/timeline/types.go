package timeline

// Event is a single recorded life occurrence or reminder.
// Events are immutable once stored: the id is assigned by the store and the
// record is never updated afterwards.
type Event struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category"`
	Timestamp   string   `json:"timestamp"`
	Tags        []string `json:"tags,omitempty"`
	CreatedAt   string   `json:"created_at"`
}

// Draft holds caller-supplied fields for a new event, before validation and
// normalization. Category defaults to "personal" when empty.
type Draft struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Timestamp   string   `json:"timestamp"`
	Tags        []string `json:"tags,omitempty"`
}

// Query is a read-only filter descriptor. Every field is independently
// optional; present fields combine with logical AND. Start and End are
// calendar dates (YYYY-MM-DD); End covers its whole day. A Limit of zero
// means unlimited.
type Query struct {
	Start      string `json:"start_date,omitempty"`
	End        string `json:"end_date,omitempty"`
	Category   string `json:"category,omitempty"`
	SearchText string `json:"search_text,omitempty"`
	Limit      int    `json:"limit,omitempty"`
}

// CategoryStat is a derived per-category aggregate; it is never persisted.
type CategoryStat struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
	Earliest string `json:"earliest,omitempty"`
	Latest   string `json:"latest,omitempty"`
}

// Stats is a single aggregate snapshot of the whole timeline. Earliest and
// Latest are empty strings when the store is empty.
type Stats struct {
	TotalCount int64          `json:"total_count"`
	Earliest   string         `json:"earliest,omitempty"`
	Latest     string         `json:"latest,omitempty"`
	Categories []CategoryStat `json:"categories,omitempty"`
}

// Statistics extends Stats with the inclusive day span between the earliest
// and latest event dates (0 for zero or one event).
type Statistics struct {
	Stats
	SpanDays int64 `json:"span_days"`
}

// ReminderCategory is the reserved category marking reminder semantics.
const ReminderCategory = "reminder"

// DefaultCategory is assigned to events logged without a category.
const DefaultCategory = "personal"
