// Package directory holds the organisation table: depots, vehicle segments, supervisors
// and unit assignments.
//
// The table is loaded once from a YAML file (or the built-in defaults) and passed to the
// catalog loader and the wash workflow at construction time. Depot and segment lookups
// are case and diacritic insensitive, so catalog sources may spell "Guápiles" or
// "GUAPILES" and still resolve to the same depot.
//
// # File Format
//
//	depots:
//	  - {id: cartago, name: Cartago}
//	segments:
//	  - {id: bulk, name: Bulk, type: Bulk, aliases: [graneles, granel]}
//	supervisors:
//	  - {id: sup-erick-valerin, name: Erick Valerin, depot: Cartago, segment: graneles}
//	assignments:
//	  - {supervisor_id: sup-erick-valerin, unit_id: C170135}
package directory
