package api

// EnvelopeVersion identifies the response envelope format.
const EnvelopeVersion = "1"
