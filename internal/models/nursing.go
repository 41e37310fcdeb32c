package models

// NursingReport is one nursing-visit log entry.
type NursingReport struct {
	Reason      string `json:"reason"`
	Date        string `json:"date"`
	HourEntry   string `json:"hour_entry"`
	HourOut     string `json:"hour_out"`
	Procedure   string `json:"procedure"`
	Observation string `json:"observation"`
	Nurse       string `json:"enfermera"`
}
