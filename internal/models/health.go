package models

// HealthMilestone is a recovery event reached a fixed number of hours after quitting
type HealthMilestone struct {
	Hours       float64
	Title       string
	Description string
}

// HealthMilestones is sorted by Hours ascending.
var HealthMilestones = []HealthMilestone{
	{Hours: 1, Title: "Heart rate normalizing", Description: "Your heart rate begins to drop back to normal levels."},
	{Hours: 8, Title: "Oxygen levels recovering", Description: "Carbon monoxide levels in blood drop; oxygen levels improve."},
	{Hours: 24, Title: "Reduced heart attack risk", Description: "Risk of heart attack begins to decrease."},
	{Hours: 48, Title: "Taste & smell improve", Description: "Nerve endings start to regrow. You may notice flavors and smells more."},
	{Hours: 72, Title: "Breathing easier", Description: "Bronchial tubes relax, making breathing easier. Energy increases."},
	{Hours: 336, Title: "Circulation improves", Description: "After 2 weeks, circulation and lung function begin to improve."},
	{Hours: 720, Title: "Coughing decreases", Description: "After 1 month, cilia regrow in lungs. Coughing and shortness of breath decrease."},
	{Hours: 2160, Title: "Lung function up 30%", Description: "After 3 months, lung function significantly improves."},
	{Hours: 4320, Title: "Half-year milestone", Description: "After 6 months, many withdrawal symptoms have faded completely."},
	{Hours: 8760, Title: "One year free", Description: "Risk of heart disease has dropped to half that of a nicotine user."},
}
