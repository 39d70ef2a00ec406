// Package influx implements the storage.Backend interface by writing results
// as InfluxDB points, falling back to a gzipped line-protocol file when the
// server cannot be reached.
package influx

import (
	"compress/gzip"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_api "github.com/influxdata/influxdb-client-go/v2/api"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/influxdata/influxdb-client-go/v2/domain"
	"github.com/rs/zerolog"

	"github.com/kinetic-alphabet/pictograph/internal/config"
	"github.com/kinetic-alphabet/pictograph/pkg/core"
)

// Measurement names.
const (
	MeasurementClassification = "classification"
	MeasurementPlacement      = "placement"
)

const retentionSeconds = 60 * 60 * 24 * 90 // 90 days

// Backend writes results to InfluxDB or to a backup file.
type Backend struct {
	cfg    config.InfluxConfig
	logger zerolog.Logger

	// BackupPath receives line protocol when the server is unreachable.
	BackupPath string

	client       influxdb2.Client
	writer       influxdb2_api.WriteAPI
	backupFile   *os.File
	backupWriter *gzip.Writer
	mu           sync.Mutex
	valid        bool
}

// New creates a new InfluxDB backend. Nothing is contacted until Init.
func New(cfg config.InfluxConfig, log zerolog.Logger) *Backend {
	return &Backend{
		cfg:        cfg,
		logger:     log,
		BackupPath: "influx_backup.lp.gz",
	}
}

// Init connects to InfluxDB, ensuring org and bucket exist. When the server
// does not answer a ping, points go to the backup file instead.
func (b *Backend) Init() error {
	b.client = influxdb2.NewClientWithOptions(
		b.cfg.URL(),
		b.cfg.Token,
		influxdb2.DefaultOptions().
			SetBatchSize(500).
			SetFlushInterval(1000),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	running, err := b.client.Ping(ctx)
	if err != nil || !running {
		b.logger.Warn().Err(err).Str("backupPath", b.BackupPath).
			Msg("InfluxDB not reachable, writing to backup file")
		return b.openBackup()
	}

	if err := b.setupOrganizationAndBucket(ctx); err != nil {
		return err
	}

	b.writer = b.client.WriteAPI(b.cfg.Org, b.cfg.Bucket)
	go func(errorsCh <-chan error) {
		for writeErr := range errorsCh {
			b.logger.Error().Err(writeErr).Str("bucket", b.cfg.Bucket).
				Msg("Error sending data to InfluxDB")
		}
	}(b.writer.Errors())

	b.valid = true
	b.logger.Info().Str("url", b.cfg.URL()).Msg("InfluxDB client initialized")
	return nil
}

func (b *Backend) openBackup() error {
	file, err := os.OpenFile(b.BackupPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("error creating backup file: %w", err)
	}
	b.backupFile = file
	b.backupWriter = gzip.NewWriter(file)
	return nil
}

func (b *Backend) setupOrganizationAndBucket(ctx context.Context) error {
	orgs := b.client.OrganizationsAPI()

	org, err := orgs.FindOrganizationByName(ctx, b.cfg.Org)
	if err != nil {
		b.logger.Info().Str("org", b.cfg.Org).Msg("Organization not found, creating")
		org, err = orgs.CreateOrganizationWithName(ctx, b.cfg.Org)
		if err != nil {
			return fmt.Errorf("error creating organization %s: %w", b.cfg.Org, err)
		}
	}

	if _, err = b.client.BucketsAPI().FindBucketByName(ctx, b.cfg.Bucket); err != nil {
		b.logger.Info().Str("bucket", b.cfg.Bucket).Msg("Bucket not found, creating")

		rule := domain.RetentionRuleTypeExpire
		_, err = b.client.BucketsAPI().CreateBucketWithName(ctx, org, b.cfg.Bucket, domain.RetentionRule{
			Type:         &rule,
			EverySeconds: retentionSeconds,
		})
		if err != nil {
			return fmt.Errorf("error creating bucket %s: %w", b.cfg.Bucket, err)
		}
	}
	return nil
}

// Close flushes pending points and releases the client or backup file.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.writer != nil {
		b.writer.Flush()
	}
	if b.client != nil {
		b.client.Close()
	}
	if b.backupWriter != nil {
		if err := b.backupWriter.Close(); err != nil {
			return fmt.Errorf("error closing backup writer: %w", err)
		}
		b.backupWriter = nil
	}
	if b.backupFile != nil {
		if err := b.backupFile.Close(); err != nil {
			return fmt.Errorf("error closing backup file: %w", err)
		}
		b.backupFile = nil
	}
	return nil
}

// RecordClassification writes a classification point.
func (b *Backend) RecordClassification(r *core.ClassificationRecord) error {
	return b.writePoint(ClassificationPoint(*r))
}

// RecordPlacement writes a placement point.
func (b *Backend) RecordPlacement(r *core.PlacementRecord) error {
	return b.writePoint(PlacementPoint(*r))
}

func (b *Backend) writePoint(point *influxdb2_write.Point) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.valid {
		b.writer.WritePoint(point)
		return nil
	}
	if b.backupWriter == nil {
		return fmt.Errorf("influxDB client not initialized and backup writer not available")
	}

	lineProtocol := influxdb2_write.PointToLineProtocol(point, time.Nanosecond)
	if !strings.HasSuffix(lineProtocol, "\n") {
		lineProtocol += "\n"
	}
	if _, err := b.backupWriter.Write([]byte(lineProtocol)); err != nil {
		return fmt.Errorf("error writing to InfluxDB backup file: %w", err)
	}
	return nil
}

// tags drops empty values, which line protocol cannot carry.
func tags(kv map[string]string) map[string]string {
	for k, v := range kv {
		if v == "" {
			delete(kv, k)
		}
	}
	return kv
}

// ClassificationPoint builds the point for one classification. Misses have no letter tag.
func ClassificationPoint(r core.ClassificationRecord) *influxdb2_write.Point {
	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	return influxdb2.NewPoint(MeasurementClassification,
		tags(map[string]string{
			"letter":   string(r.Letter),
			"strategy": r.Strategy,
			"found":    strconv.FormatBool(r.Letter != ""),
		}),
		map[string]interface{}{
			"beat":       r.BeatNumber,
			"confidence": r.Confidence,
			"warnings":   len(r.Warnings),
		},
		ts,
	)
}

// PlacementPoint builds the point for one arrow placement.
func PlacementPoint(r core.PlacementRecord) *influxdb2_write.Point {
	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	return influxdb2.NewPoint(MeasurementPlacement,
		tags(map[string]string{
			"letter":      string(r.Letter),
			"color":       string(r.Color),
			"motion_type": string(r.MotionType),
			"grid_mode":   string(r.GridMode),
			"location":    string(r.Location),
		}),
		map[string]interface{}{
			"beat":     r.BeatNumber,
			"quadrant": r.Quadrant,
			"dx":       r.DX,
			"dy":       r.DY,
		},
		ts,
	)
}
