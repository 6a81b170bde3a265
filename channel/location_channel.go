package channel

import (
	"encoding/json"
	"fmt"
	"log"

	"truckmap/config"
	"truckmap/db"
	"truckmap/models"
)

// LocationChannel is the cross-window mailbox: two named slots in a shared
// key-value namespace, visible to the editor and picker processes. Each
// slot holds at most one value with last-write-wins overwrite semantics.
// Writers publish a change notification after storing so listeners in the
// other process wake up without polling.
type LocationChannel struct {
	client db.RedisClient
}

// NewLocationChannel initializes a LocationChannel over the shared store.
func NewLocationChannel(client db.RedisClient) *LocationChannel {
	return &LocationChannel{client: client}
}

// PublishPendingEdit stores the schedule currently being edited so a
// freshly opened picker can seed itself from it. Overwrites any
// unconsumed value.
func (c *LocationChannel) PublishPendingEdit(s models.Schedule) error {
	return c.publish(config.PENDING_EDIT_SLOT, s)
}

// ReadPendingEdit returns the pending edit without clearing the slot.
// Absent or malformed payloads read as "no pending edit".
func (c *LocationChannel) ReadPendingEdit() (*models.Schedule, bool) {
	var s models.Schedule
	if !c.read(config.PENDING_EDIT_SLOT, &s) {
		return nil, false
	}
	return &s, true
}

// PublishResolvedLocation stores the picker's result and signals the
// editor. A second publish before consumption overwrites the first.
func (c *LocationChannel) PublishResolvedLocation(loc models.ResolvedLocation) error {
	return c.publish(config.RESOLVED_LOCATION_SLOT, loc)
}

// ConsumeResolvedLocation reads the resolved location and deletes the
// slot so the same update is never processed twice.
func (c *LocationChannel) ConsumeResolvedLocation() (*models.ResolvedLocation, bool) {
	var loc models.ResolvedLocation
	ok := c.read(config.RESOLVED_LOCATION_SLOT, &loc)
	// Clear even when the payload was malformed, otherwise a broken
	// value would wedge the slot.
	if err := c.client.Del(config.RESOLVED_LOCATION_SLOT); err != nil {
		log.Printf("[LocationChannel] Failed to clear slot %s: %v", config.RESOLVED_LOCATION_SLOT, err)
	}
	if !ok {
		return nil, false
	}
	return &loc, true
}

// WatchResolvedLocation returns a signal stream that fires whenever the
// resolved-location slot is written, plus a closer for the subscription.
func (c *LocationChannel) WatchResolvedLocation() (<-chan string, func() error) {
	return c.client.Subscribe(slotEventsTopic(config.RESOLVED_LOCATION_SLOT))
}

func (c *LocationChannel) publish(slot string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("[LocationChannel] failed to marshal payload for slot %s: %v", slot, err)
	}
	if err := c.client.Set(slot, string(data)); err != nil {
		return fmt.Errorf("[LocationChannel] failed to store slot %s: %v", slot, err)
	}
	if err := c.client.Publish(slotEventsTopic(slot), slot); err != nil {
		return fmt.Errorf("[LocationChannel] failed to notify slot %s: %v", slot, err)
	}
	return nil
}

// read decodes the slot into out. Absence and decode failures both read
// as "nothing to do" - they are never surfaced to the user.
func (c *LocationChannel) read(slot string, out interface{}) bool {
	raw, err := c.client.Get(slot)
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		log.Printf("[LocationChannel] Ignoring malformed payload in slot %s: %v", slot, err)
		return false
	}
	return true
}

func slotEventsTopic(slot string) string {
	return fmt.Sprintf(config.SLOT_EVENTS_TOPIC_FORMAT, slot)
}
