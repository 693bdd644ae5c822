// Package events provides types and interfaces for an event-driven architecture.
//
// This package defines event types and handler interfaces that allow for loose
// coupling between components in the system. The mentorship service emits
// lifecycle events without knowing which handlers will process them; today the
// only consumer is the notification dispatch pipeline, but the indirection
// keeps the service free of task-queue dependencies.
//
// The primary components are:
// - NotificationEvent: Represents a mentorship lifecycle occurrence to notify about
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
package events
