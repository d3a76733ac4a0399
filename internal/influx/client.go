// Package influx sends recorded solves to an InfluxDB v2 bucket.
package influx

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cubetimer/internal/core/model"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	ihttp "github.com/influxdata/influxdb-client-go/v2/api/http"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

const (
	Measurement       = "solving_time"
	TagCube           = "cube"
	FieldRecordedTime = "recorded_time"

	DefaultTimeout = 10 * time.Second
)

// ErrNotConfigured is returned when the client lacks credentials.
var ErrNotConfigured = errors.New("influx client not configured")

// Client writes one point per Transmit call.
type Client struct {
	config model.InfluxConfig
}

// NewClient creates a client for the given credentials.
func NewClient(config model.InfluxConfig) *Client {
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	return &Client{config: config}
}

// NewPoint builds the data point for a solve. The server assigns the
// timestamp.
func NewPoint(solve model.Solve) *write.Point {
	return write.NewPointWithMeasurement(Measurement).
		AddTag(TagCube, string(solve.Kind)).
		AddField(FieldRecordedTime, solve.Seconds)
}

// Transmit writes the solve synchronously. A nil solve is a no-op. The
// connection is released on every path and failures are not retried.
func (client *Client) Transmit(ctx context.Context, solve *model.Solve) error {
	if solve == nil {
		return nil
	}
	if client.config.URL == "" || client.config.Bucket == "" {
		return ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, client.config.Timeout)
	defer cancel()

	influxClient := client.open()
	defer influxClient.Close()

	writeAPI := influxClient.WriteAPIBlocking(client.config.Org, client.config.Bucket)
	if err := writeAPI.WritePoint(ctx, NewPoint(*solve)); err != nil {
		return fmt.Errorf("write solve to bucket %s: %w", client.config.Bucket, err)
	}
	return nil
}

// Ping checks that the server is reachable.
func (client *Client) Ping(ctx context.Context) error {
	if client.config.URL == "" {
		return ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, client.config.Timeout)
	defer cancel()

	influxClient := client.open()
	defer influxClient.Close()

	ok, err := influxClient.Ping(ctx)
	if err != nil {
		return fmt.Errorf("ping %s: %w", client.config.URL, err)
	}
	if !ok {
		return fmt.Errorf("ping %s: server not ready", client.config.URL)
	}
	return nil
}

func (client *Client) open() influxdb2.Client {
	timeoutSeconds := uint(client.config.Timeout / time.Second)
	if timeoutSeconds == 0 {
		timeoutSeconds = 1
	}
	options := influxdb2.DefaultOptions().SetHTTPRequestTimeout(timeoutSeconds)
	return influxdb2.NewClientWithOptions(client.config.URL, client.config.Token, options)
}

// Message extracts the human-readable part of a write error.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var serverErr *ihttp.Error
	if errors.As(err, &serverErr) && serverErr.Message != "" {
		return serverErr.Message
	}
	return err.Error()
}
