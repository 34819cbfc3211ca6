package domain

// Collection names under which records are persisted.
const (
	LeadCollection        = "lead"
	DemoRequestCollection = "demorequest"
)

// Lead is a prospective customer captured from the site.
type Lead struct {
	// Name is the prospect's full name.
	Name string `bson:"name" json:"name"`
	// Phone is the prospect's mobile phone.
	Phone string `bson:"phone" json:"phone"`
	// Email is optional; when set it is a syntactically valid address.
	Email *string `bson:"email,omitempty" json:"email,omitempty"`
	// Source tells where the lead came from, e.g. demo, consultation, calculator.
	Source string `bson:"source" json:"source"`
	// Notes carries any additional context from the form or chat.
	Notes *string `bson:"notes,omitempty" json:"notes,omitempty"`
	// Industry is the contractor's trade, e.g. roofing or plumbing.
	Industry *string `bson:"industry,omitempty" json:"industry,omitempty"`
}

// DemoRequest asks for a simulated AI chat/SMS conversation.
type DemoRequest struct {
	Name  string `bson:"name"  json:"name"`
	Phone string `bson:"phone" json:"phone"`
	// SampleIntent seeds the visitor's first message, e.g. "roofing quote".
	SampleIntent *string `bson:"sample_intent,omitempty" json:"sampleIntent,omitempty"`
}

// Demo is the outcome of a stored demo request.
type Demo struct {
	ID         string `json:"id"`
	Transcript []Turn `json:"transcript"`
}
