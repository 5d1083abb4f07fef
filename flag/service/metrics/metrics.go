package metrics

type Metrics struct {
	Pushgateway string
}
