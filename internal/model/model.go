package model

// Package model contains the request and response shapes shared by the service and HTTP layers.
// No business logic here.

// Answer is the reply to a free-text query.
type Answer struct {
	Answer string `json:"answer"`
}

// ImageAnalysis is the outcome of an image upload. Filename is the key the bytes were stored under;
// the HTTP layer turns it into a public URL.
type ImageAnalysis struct {
	Result   string `json:"result"`
	Filename string `json:"-"`
	Size     int64  `json:"-"`
}

// WeatherReport is the weather summary for a location.
type WeatherReport struct {
	Location    string `json:"location"`
	Temperature int    `json:"temperature"`
	Humidity    int    `json:"humidity"`
	Conditions  string `json:"conditions"`
	Advisory    string `json:"advisory"`
}

// ContactSubmission is a message sent through the contact form.
type ContactSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ContactReceipt acknowledges a contact submission.
type ContactReceipt struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
