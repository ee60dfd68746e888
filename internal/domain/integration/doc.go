// Package integration contains the Integration bounded context.
// This context models the data exchanged between the ERP (Odoo) and the
// storefront (Magento) during synchronization.
//
// Key concepts:
//   - ERPClient / StorefrontClient: Port interfaces for the two remote systems
//   - Product: Canonical product record sourced from the ERP
//   - StorefrontOrder: Order record pulled from the storefront
//   - Customer / OrderLine: ERP-bound records derived from a storefront order
//   - Reports: Per-item and batch synchronization outcomes
//
// Design Pattern: Ports & Adapters
//   - Ports (interfaces) are defined here in the domain layer
//   - Adapters (odoo, magento) are in the infrastructure layer
package integration
