package entities

// Tip lives in the document store, not in postgres.
type Tip struct {
	ID          string `bson:"_id" json:"id"`
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
	ImageURL    string `bson:"image_url" json:"image_url"`
	Category    string `bson:"category" json:"category"`
	Position    int    `bson:"position" json:"position"`
}
