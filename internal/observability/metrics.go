package observability

const (
	MOperationRequests MetricKey = "operation_requests_total"
	MOperationDuration MetricKey = "operation_duration_seconds"
	MDomainEvents      MetricKey = "domain_events_total"
)
