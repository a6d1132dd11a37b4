package health

// TimeFormat is fixed width UTC ISO-8601 with millisecond precision, so that
// lexical and chronological order of the time field agree.
const TimeFormat = "2006-01-02T15:04:05.000Z07:00"

const StatusOK = "ok"

// HealthStatus is the payload of GET /api/health. Field order is the wire order.
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Time    string `json:"time"`
}
