package services

import (
	"testing"

	"keeply/backend/models"
)

func TestStreamHubDelivers(t *testing.T) {
	hub := NewStreamHub()
	sub := hub.Subscribe("user-1", models.CollectionTasks)
	defer sub.Close()

	hub.Publish("user-1", models.CollectionTasks)

	select {
	case <-sub.C:
	default:
		t.Error("Expected a wakeup after publish")
	}
}

func TestStreamHubScopesByUserAndCollection(t *testing.T) {
	hub := NewStreamHub()
	sub := hub.Subscribe("user-1", models.CollectionTasks)
	defer sub.Close()

	hub.Publish("user-2", models.CollectionTasks)
	hub.Publish("user-1", models.CollectionExpenses)

	select {
	case <-sub.C:
		t.Error("Received a wakeup for another user's or collection's change")
	default:
	}
}

func TestStreamHubCoalesces(t *testing.T) {
	hub := NewStreamHub()
	sub := hub.Subscribe("user-1", models.CollectionTasks)
	defer sub.Close()

	hub.Publish("user-1", models.CollectionTasks)
	hub.Publish("user-1", models.CollectionTasks)
	hub.Publish("user-1", models.CollectionTasks)

	count := 0
	for {
		select {
		case <-sub.C:
			count++
			continue
		default:
		}
		break
	}
	if count != 1 {
		t.Errorf("Expected a burst of publishes to coalesce into 1 wakeup, got %d", count)
	}
}

func TestStreamHubCloseStopsDelivery(t *testing.T) {
	hub := NewStreamHub()
	sub := hub.Subscribe("user-1", models.CollectionTasks)
	sub.Close()
	sub.Close() // idempotent

	hub.Publish("user-1", models.CollectionTasks)

	select {
	case <-sub.C:
		t.Error("Received a wakeup after Close")
	default:
	}
}
