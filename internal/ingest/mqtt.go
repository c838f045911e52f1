// Package ingest consumes vehicle tracking points published over MQTT by
// on-vehicle trackers and appends them to storage. Points can arrive out of
// order; the subscriber stores whatever arrives and leaves "current location"
// resolution to the readers.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/swachhdev/waste-collect/internal/db"
	"github.com/swachhdev/waste-collect/internal/models"
	"github.com/swachhdev/waste-collect/internal/validation"
)

// TrackingTopic is the shared subscription topic; trackers publish to
// waste/tracking/<vehicle_number>.
const TrackingTopic = "waste/tracking/+"

// Subscriber bridges the tracking topic into the tracking collection.
type Subscriber struct {
	client   mqtt.Client
	tracking db.TrackingCollection
	timeout  time.Duration
}

// NewSubscriber connects to the broker and returns a subscriber ready to
// start. clientID distinguishes concurrent server instances on the broker.
func NewSubscriber(brokerURL, clientID string, tracking db.TrackingCollection) (*Subscriber, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second)
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		log.WithError(err).Warn("mqtt connection lost")
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}

	return &Subscriber{
		client:   client,
		tracking: tracking,
		timeout:  10 * time.Second,
	}, nil
}

// Start subscribes to the tracking topic. Handler callbacks run on the paho
// client's goroutines.
func (s *Subscriber) Start() error {
	if token := s.client.Subscribe(TrackingTopic, 1, s.handle); token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqtt subscribe: %w", token.Error())
	}
	log.WithField("topic", TrackingTopic).Info("Tracking ingest started")
	return nil
}

// Stop disconnects from the broker, waiting briefly for in-flight work.
func (s *Subscriber) Stop() {
	s.client.Disconnect(250)
}

// handle decodes and stores one published point. Malformed or invalid
// payloads are logged and dropped; a bad publisher must not take the
// subscription down.
func (s *Subscriber) handle(_ mqtt.Client, msg mqtt.Message) {
	var point models.VehicleTrackingPoint
	if err := json.Unmarshal(msg.Payload(), &point); err != nil {
		log.WithError(err).WithField("topic", msg.Topic()).Warn("dropping malformed tracking payload")
		return
	}

	if err := validation.ValidateVehicleNumber(point.VehicleNumber); err != nil {
		log.WithField("topic", msg.Topic()).Warn("dropping tracking point without a valid vehicle number")
		return
	}
	if point.Status == "" {
		point.Status = models.TrackingActive
	} else if !models.IsValidTrackingStatus(point.Status) {
		log.WithFields(log.Fields{
			"vehicle_number": point.VehicleNumber,
			"status":         point.Status,
		}).Warn("dropping tracking point with unknown status")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.tracking.InsertPoint(ctx, point); err != nil {
		log.WithError(err).WithField("vehicle_number", point.VehicleNumber).Error("failed to store tracking point")
	}
}
