// Package archival carries the instrumentation contract of the tiered
// storage upload pipeline. The pipeline itself runs elsewhere; it reports
// progress through these probes, which the admin server exposes on its
// metrics route.
package archival

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/parishadmk/logstream/internal/cluster/model"
)

const subsystem = "archival"

// ServiceProbe counts service-wide archiver events.
type ServiceProbe struct {
	Gaps                     prometheus.Counter
	TopicManifestUploads     prometheus.Counter
	PartitionManifestUploads prometheus.Counter
	StartArchivingNTP        prometheus.Counter
	StopArchivingNTP         prometheus.Counter
	ManifestBackoff          prometheus.Counter
	Reconciliations          prometheus.Counter
	SuccessfulUploads        prometheus.Counter
	FailedUploads            prometheus.Counter
	UploadBackoff            prometheus.Counter
}

func NewServiceProbe(reg prometheus.Registerer) *ServiceProbe {
	counter := func(name, help string) prometheus.Counter {
		c := prometheus.NewCounter(prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		})
		reg.MustRegister(c)
		return c
	}
	return &ServiceProbe{
		Gaps:                     counter("num_gaps_total", "Number of detected offset gaps"),
		TopicManifestUploads:     counter("topic_manifest_uploads_total", "Number of topic manifest uploads"),
		PartitionManifestUploads: counter("partition_manifest_uploads_total", "Number of partition manifest uploads"),
		StartArchivingNTP:        counter("start_archiving_ntp_total", "Number of partitions that started archiving"),
		StopArchivingNTP:         counter("stop_archiving_ntp_total", "Number of partitions that stopped archiving"),
		ManifestBackoff:          counter("manifest_backoff_total", "Number of backoffs while uploading manifests"),
		Reconciliations:          counter("reconciliations_total", "Number of archiver reconciliation rounds"),
		SuccessfulUploads:        counter("successful_uploads_total", "Number of successful segment uploads"),
		FailedUploads:            counter("failed_uploads_total", "Number of failed segment uploads"),
		UploadBackoff:            counter("upload_backoff_total", "Number of backoffs while uploading segments"),
	}
}

// NTPProbe tracks upload progress for a single partition, labeled by its
// identity.
type NTPProbe struct {
	uploaded *prometheus.CounterVec
	missing  *prometheus.CounterVec
	pending  *prometheus.GaugeVec
}

func NewNTPProbe(reg prometheus.Registerer) *NTPProbe {
	labels := []string{"namespace", "topic", "partition"}
	p := &NTPProbe{
		uploaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "ntp_uploaded_offsets_total",
			Help:      "Uploaded offsets",
		}, labels),
		missing: prometheus.NewCounterVec(prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "ntp_missing_offsets_total",
			Help:      "Missing offsets due to gaps",
		}, labels),
		pending: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Subsystem: subsystem,
			Name:      "ntp_pending_offsets",
			Help:      "Pending offsets",
		}, labels),
	}
	reg.MustRegister(p.uploaded, p.missing, p.pending)
	return p
}

func ntpLabels(ntp model.NTP) prometheus.Labels {
	return prometheus.Labels{
		"namespace": string(ntp.Namespace),
		"topic":     string(ntp.Topic),
		"partition": strconv.Itoa(int(ntp.Partition)),
	}
}

func (p *NTPProbe) Uploaded(ntp model.NTP, offsets float64) {
	p.uploaded.With(ntpLabels(ntp)).Add(offsets)
}

func (p *NTPProbe) Missing(ntp model.NTP, offsets float64) {
	p.missing.With(ntpLabels(ntp)).Add(offsets)
}

func (p *NTPProbe) SetPending(ntp model.NTP, offsets float64) {
	p.pending.With(ntpLabels(ntp)).Set(offsets)
}
