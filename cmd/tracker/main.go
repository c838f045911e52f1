// Command tracker simulates on-vehicle GPS units for development. Each
// simulated vehicle publishes tracking points over MQTT on the topic the
// server's ingest subscriber listens to.
package main

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/swachhdev/waste-collect/internal/models"
)

// Location is a latitude/longitude pair.
type Location struct {
	Lat float64
	Lon float64
}

// Collection routes start near these city centers.
var cities = []Location{
	{Lat: 28.6139, Lon: 77.2090}, // Delhi
	{Lat: 19.0760, Lon: 72.8777}, // Mumbai
	{Lat: 12.9716, Lon: 77.5946}, // Bengaluru
	{Lat: 17.3850, Lon: 78.4867}, // Hyderabad
	{Lat: 13.0827, Lon: 80.2707}, // Chennai
	{Lat: 22.5726, Lon: 88.3639}, // Kolkata
	{Lat: 18.5204, Lon: 73.8567}, // Pune
	{Lat: 23.0225, Lon: 72.5714}, // Ahmedabad
	{Lat: 26.9124, Lon: 75.7873}, // Jaipur
	{Lat: 21.1458, Lon: 79.0882}, // Nagpur
}

func jitterLocation(base Location, meters float64) Location {
	latMetersPerDeg := 111320.0
	lonMetersPerDeg := 111320.0 * math.Cos(base.Lat*math.Pi/180)
	dLat := (rand.Float64()*2 - 1) * (meters / latMetersPerDeg)
	dLon := (rand.Float64()*2 - 1) * (meters / lonMetersPerDeg)
	return Location{Lat: base.Lat + dLat, Lon: base.Lon + dLon}
}

func randomLocation() Location {
	base := cities[rand.Intn(len(cities))]
	return jitterLocation(base, 2000)
}

// vehicleState holds one simulated vehicle between ticks.
type vehicleState struct {
	VehicleNumber string
	CollectorID   string
	Position      Location
	SpeedKmh      float64
}

func (s *vehicleState) step(tickSec float64) {
	s.SpeedKmh += (rand.Float64()*2 - 1) * 2
	if s.SpeedKmh < 5 {
		s.SpeedKmh = 5
	}
	if s.SpeedKmh > 45 {
		s.SpeedKmh = 45
	}
	// Collection rounds stay within the colony, so a bounded random walk is
	// close enough to a real route.
	km := s.SpeedKmh * (tickSec / 3600.0)
	s.Position = jitterLocation(s.Position, km*1000)
}

func (s *vehicleState) point() models.VehicleTrackingPoint {
	return models.VehicleTrackingPoint{
		VehicleNumber: s.VehicleNumber,
		CollectorID:   s.CollectorID,
		Latitude:      s.Position.Lat,
		Longitude:     s.Position.Lon,
		Timestamp:     time.Now(),
		Status:        models.TrackingActive,
		Speed:         s.SpeedKmh,
	}
}

func publishLoop(client mqtt.Client, s *vehicleState, interval time.Duration) {
	topic := "waste/tracking/" + s.VehicleNumber
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for range tick.C {
		s.step(interval.Seconds())
		data, err := json.Marshal(s.point())
		if err != nil {
			log.WithError(err).Error("Failed to marshal tracking point")
			continue
		}
		token := client.Publish(topic, 1, false, data)
		token.Wait()
		if token.Error() != nil {
			log.WithError(token.Error()).WithField("vehicle_number", s.VehicleNumber).Error("Failed to publish tracking point")
			continue
		}
		log.WithFields(log.Fields{
			"vehicle_number": s.VehicleNumber,
			"lat":            s.Position.Lat,
			"lon":            s.Position.Lon,
		}).Debug("Published tracking point")
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using environment variables")
	}

	brokerURL := os.Getenv("MQTT_BROKER_URL")
	if brokerURL == "" {
		brokerURL = "tcp://localhost:1883"
	}

	fleetSize := 5
	if v := os.Getenv("FLEET_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			fleetSize = n
		}
	}

	interval := 5 * time.Second
	if v := os.Getenv("TRACKER_TICK_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			interval = time.Duration(n) * time.Second
		}
	}

	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID("waste-collect-tracker").
		SetAutoReconnect(true)
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.WithError(token.Error()).Fatal("Failed to connect to MQTT broker")
	}

	log.WithFields(log.Fields{
		"broker":     brokerURL,
		"fleet_size": fleetSize,
		"interval":   interval,
	}).Info("Starting vehicle tracker simulation")

	for i := 0; i < fleetSize; i++ {
		state := &vehicleState{
			VehicleNumber: fmt.Sprintf("WM-%04d", 1000+i),
			CollectorID:   fmt.Sprintf("sim-collector-%d", i+1),
			Position:      randomLocation(),
			SpeedKmh:      10 + rand.Float64()*20,
		}
		go publishLoop(client, state, interval)
	}

	select {} // Block forever
}
