package db

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sync"
)

// MockRedisClient simulates a Redis client for testing purposes. Pub/sub
// is backed by in-memory subscriber lists so two service instances inside
// one test process can observe each other's publishes, the way two
// browser windows observe the same origin's storage.
type MockRedisClient struct {
	data        map[string]string            // Key-value store
	geoData     map[string]map[string]GeoLoc // Geolocation data
	subscribers map[string][]*mockSubscriber // Pub/sub topic listeners
	mu          sync.RWMutex                 // Mutex for thread-safe operations
	context     context.Context
}

// mockSubscriber guards its channel so a publish racing the closer can
// never send on a closed channel.
type mockSubscriber struct {
	mu     sync.Mutex
	ch     chan string
	closed bool
}

func (s *mockSubscriber) deliver(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	// Drop when the subscriber is backlogged, like real pub/sub.
	select {
	case s.ch <- message:
	default:
	}
}

func (s *mockSubscriber) shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}

// GeoLoc represents a geolocation with latitude and longitude.
type GeoLoc struct {
	Latitude  float64
	Longitude float64
}

// NewMockRedisClient initializes a new MockRedisClient.
func NewMockRedisClient(ctx context.Context) *MockRedisClient {
	return &MockRedisClient{
		data:        make(map[string]string),
		geoData:     make(map[string]map[string]GeoLoc),
		subscribers: make(map[string][]*mockSubscriber),
		context:     ctx,
	}
}

// Set stores a key-value pair in the mock Redis.
func (m *MockRedisClient) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// Get retrieves a value for a given key from the mock Redis.
func (m *MockRedisClient) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, exists := m.data[key]
	if !exists {
		return "", fmt.Errorf("key not found: %s", key)
	}
	return value, nil
}

// Del removes a key from the mock Redis.
func (m *MockRedisClient) Del(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Keys lists keys matching a glob pattern.
func (m *MockRedisClient) Keys(pattern string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := []string{}
	for k := range m.data {
		if ok, _ := path.Match(pattern, k); ok {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

// Publish delivers a message to every subscriber of the topic.
func (m *MockRedisClient) Publish(topic, message string) error {
	m.mu.RLock()
	subs := append([]*mockSubscriber{}, m.subscribers[topic]...)
	m.mu.RUnlock()

	for _, sub := range subs {
		sub.deliver(message)
	}
	return nil
}

// Subscribe registers a listener on the topic.
func (m *MockRedisClient) Subscribe(topic string) (<-chan string, func() error) {
	sub := &mockSubscriber{ch: make(chan string, 16)}
	m.mu.Lock()
	m.subscribers[topic] = append(m.subscribers[topic], sub)
	m.mu.Unlock()

	closer := func() error {
		m.mu.Lock()
		subs := m.subscribers[topic]
		for i, s := range subs {
			if s == sub {
				m.subscribers[topic] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
		m.mu.Unlock()

		sub.shutdown()
		return nil
	}
	return sub.ch, closer
}

// AddLocationWithJSON adds geolocation with JSON data in the mock Redis.
func (m *MockRedisClient) AddLocationWithJSON(ctx context.Context, geoKey, memberKey string, lat, lon float64, data interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Serialize the data to JSON.
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %v", err)
	}

	// Add to geolocation data.
	if _, exists := m.geoData[geoKey]; !exists {
		m.geoData[geoKey] = make(map[string]GeoLoc)
	}
	m.geoData[geoKey][memberKey] = GeoLoc{Latitude: lat, Longitude: lon}

	// Add JSON data.
	m.data[memberKey] = string(jsonData)
	return nil
}

// GetLocationsWithinRadius retrieves JSON data for members within a given radius.
func (m *MockRedisClient) GetLocationsWithinRadius(key string, lat, lon, radius float64) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	geoMembers, exists := m.geoData[key]
	if !exists {
		return nil, nil // No geolocation data for this key.
	}

	// Mock logic: Return all JSON data for simplicity.
	var results []string
	for memberKey := range geoMembers {
		if data, exists := m.data[memberKey]; exists {
			results = append(results, data)
		}
	}
	return results, nil
}

// GetContext returns the mock Redis client's context.
func (m *MockRedisClient) GetContext() context.Context {
	return m.context
}

// Ping simulates a Redis Ping operation.
func (m *MockRedisClient) Ping() error {
	return nil
}
