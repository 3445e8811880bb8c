// Package events provides types and interfaces for the in-process account
// event flow. The user service emits events without knowing which handlers
// process them; the notification dispatcher subscribes to send welcome and
// farewell mail as a side effect that never blocks or fails the request.
package events
