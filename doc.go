// Package folio derives a consolidated investment-portfolio view from
// brokerage exports. It is designed to be local-first and stateless: every
// computation is a pure function of the transaction history and the market
// prices handed to it, and each rebuild produces an entirely new snapshot.
//
// The core functionalities include:
//   - Transaction Modeling: One explicit type per transaction kind (buys,
//     sells, dividends, interest, fees, deposits, withdrawals) with sign
//     conventions enforced at construction time.
//   - Instrument Resolution: Linking a transaction's free-text description or
//     symbol to the canonical instrument identity used by market prices.
//   - Aggregation: Folding the chronological transaction stream into
//     per-instrument holdings and per-account balances.
//   - Valuation & Performance: Combining holdings with current market prices
//     into values, unrealized returns, and portfolio-level metrics.
//
// This package serves as the foundational logic for the `pfd` command-line
// tool and the dashboard server, ensuring that all views are consistent and
// based on a single source of truth.
package folio
