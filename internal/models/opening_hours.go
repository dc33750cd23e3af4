package models

// OpeningHour is one weekly window. Day is the English weekday name
// ("Sunday".."Saturday"); From and To are "HH:MM".
type OpeningHour struct {
	Day  string `json:"day"`
	From string `json:"from"`
	To   string `json:"to"`
}
