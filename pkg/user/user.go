package user

import "time"

type User struct {
	Id          int
	Uid         string
	Username    string
	DisplayName string
	Settings    Settings
}

// Settings holds per-user presentation preferences. DisplayCurrency is the
// common currency all aggregated amounts are converted into.
type Settings struct {
	DisplayCurrency string
	WeekFirstDay    time.Weekday
	Theme           string
}
