// Package finly implements a multi-currency portfolio valuation and
// reconciliation engine. It derives open positions with weighted-average
// cost basis from a chronological transaction log, replays transactions
// against historical prices and FX rates to produce a daily profit curve,
// accrues interest on fixed-income lots, and reconciles dividend records
// against held share counts.
//
// Market data flows through a Gateway that shields the engine from a slow,
// rate-limited external provider with a persisted TTL cache. Provider
// failures degrade to sentinel defaults carrying a typed failure reason so
// a single bad symbol never aborts a valuation pass.
package finly
