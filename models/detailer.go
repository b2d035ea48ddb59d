package models

// Detailer is the minimal profile the scheduling endpoints need: callers may
// omit the timezone on a request and fall back to the business's own zone.
// Full profile management lives elsewhere.
type Detailer struct {
	ID           string `bson:"id" json:"id"`
	BusinessName string `bson:"businessName" json:"businessName"`
	Timezone     string `bson:"timezone" json:"timezone"` // IANA name, e.g. "America/Chicago"
	Active       bool   `bson:"active" json:"active"`
}
