package models

// FAQ is one entry of the hotel's knowledge base, matched by keyword overlap.
type FAQ struct {
	ID       string   `bson:"id" json:"id"`
	Question string   `bson:"question" json:"question"`
	Answer   string   `bson:"answer" json:"answer"`
	Keywords []string `bson:"keywords" json:"keywords"`
}
