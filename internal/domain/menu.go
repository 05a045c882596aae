package domain

// MenuEntry is one entry of the remote catalog. Entries are immutable once
// fetched; a refresh replaces the whole catalog, never merges.
type MenuEntry struct {
	ID             string
	NameKey        string
	DescriptionKey string
	Price          string
	Category       string
	ImageURL       *string
}
