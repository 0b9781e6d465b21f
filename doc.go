// Package capgains computes realized capital gains on a history of security
// purchases and sales, and plans the sales needed to withdraw cash once the
// capital gains tax is paid.
//
// Its core functionalities are:
//   - FIFO Matching: every sale consumes the oldest purchases of the same
//     security, bought strictly before the sale, to compute its realized gain.
//   - Consolidation: a history is reduced to the purchases that still hold
//     units, which is the inventory available for future sales.
//   - Withdrawal Planning: the sales that raise a net amount of cash, taxing
//     only positive gains, oldest lots first.
//   - Yearly Aggregation: realized gains summed by calendar year.
//   - Data Persistence: histories are stored as JSONL ledgers, one transaction
//     per line, and market prices are read from any JSON document.
//
// All amounts are exact decimals. Functions never modify the history they are
// given. The package is the foundation of the `cgt` command-line tool and of
// its HTTP API.
package capgains
