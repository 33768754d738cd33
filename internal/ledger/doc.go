// Package ledger holds the pure rules of the skip-logging ledger: the
// same-day guard, streak continuity, goal funding and XP leveling, plus the
// goal-resolution policy. Nothing here touches storage; the coordinator in
// package service applies these rules inside a single store transaction.
package ledger
