// Copyright (C) 2020  Lukas Dietrich <lukas@lukasdietrich.com>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package metrics exposes prometheus metrics of both protocols.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Connection metrics
var (
	ConnectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minimail_connections_total",
			Help: "Total number of connections established",
		},
		[]string{"protocol"},
	)

	ConnectionsCurrent = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "minimail_connections_current",
			Help: "Current number of active connections",
		},
		[]string{"protocol"},
	)

	AuthenticationAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minimail_authentication_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"protocol", "result"},
	)
)

// Command metrics
var (
	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "minimail_commands_total",
			Help: "Total number of commands processed",
		},
		[]string{"protocol", "command", "status"},
	)
)

// Message metrics
var (
	MessagesReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "minimail_messages_received_total",
			Help: "Total number of messages accepted for delivery",
		},
	)

	MessagesReceivedBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "minimail_messages_received_bytes_total",
			Help: "Total size of messages accepted for delivery",
		},
	)

	MessagesRetrieved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "minimail_messages_retrieved_total",
			Help: "Total number of messages sent to clients",
		},
	)

	MessagesDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "minimail_messages_deleted_total",
			Help: "Total number of messages deleted by clients",
		},
	)
)

// Connection tracks a single connection of a protocol.
func Connection(protocol string) (done func()) {
	ConnectionsTotal.WithLabelValues(protocol).Inc()
	ConnectionsCurrent.WithLabelValues(protocol).Inc()

	return func() {
		ConnectionsCurrent.WithLabelValues(protocol).Dec()
	}
}

// Command counts a processed command.
func Command(protocol, command, status string) {
	CommandsTotal.WithLabelValues(protocol, command, status).Inc()
}

// Authentication counts an authentication attempt.
func Authentication(protocol string, success bool) {
	result := "failure"
	if success {
		result = "success"
	}

	AuthenticationAttempts.WithLabelValues(protocol, result).Inc()
}
