// Package nats exposes the intent service over NATS, next to the HTTP API.
//
// # Architecture
//
//   - Server: optional embedded NATS server for single-board setups
//   - Responder: queue-subscribes to intent requests and replies with results
//   - Bridge: republishes intent events from the event bus onto NATS
//
// # Subject Hierarchy
//
//	ledintent.intents            # request/reply, IntentRequest → IntentReply
//	ledintent.events.handled     # IntentHandledEvent
//	ledintent.events.failed      # IntentFailedEvent
//	ledintent.events.applied     # PatternAppliedEvent
//
// Responders share the queue group "ledintent", so each request is handled
// by exactly one instance. Events are fire-and-forget (core NATS, no JetStream).
//
// # Debugging with nats CLI
//
// Send an intent:
//
//	nats req ledintent.intents '{"intent":"setmood","parameters":{"mood":"calm"}}'
//
// Watch applied patterns:
//
//	nats sub "ledintent.events.>"
//
// # Message Formats
//
// IntentRequest (ledintent.intents):
//
//	{"intent": "turnonled", "parameters": {"color": "red"}}
//
// IntentReply on success:
//
//	{"result": {"status": "ok"}, "intent": "turnonled", "action": "apply", "pattern": "1000"}
//
// IntentReply on failure:
//
//	{"error": {"code": "UNSUPPORTED_COLOR", "message": "unsupported color: purple"}}
package nats
