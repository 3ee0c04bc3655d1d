// Package models defines the wire-level JSON shapes the CRM API exchanges.
//
// The models are organized into the following files:
// - auth.go: Users, login and registration payloads
// - contact.go: Contacts and tags
// - commerce.go: Orders, products and CRM products
// - learning.go: Courses and enrollments
// - messaging.go: Messages, inbound emails and email settings
// - woocommerce.go: WooCommerce sync settings and status
// - importer.go: CSV and Google Sheets import payloads
// - envelope.go: Pagination and list envelopes
package models
