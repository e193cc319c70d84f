package models

// Tool is one catalog record. ID and Slug are unique across the catalog
// and entries never change once loaded.
type Tool struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Slug        string   `json:"slug"`
	Keywords    []string `json:"keywords"`
	Popular     bool     `json:"isPopular"`
}

type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type SearchResult struct {
	Tool  Tool    `json:"tool"`
	Field string  `json:"field"`
	Score float64 `json:"score"`
}

type CatalogStats struct {
	TotalTools        int            `json:"total_tools"`
	PopularTools      int            `json:"popular_tools"`
	CategoryCount     int            `json:"category_count"`
	CategoryBreakdown map[string]int `json:"category_breakdown"`
}
