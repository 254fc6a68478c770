// Package commands defines the udwallet CLI and wires dependencies for subcommands.
//
// Commands
//
//   - wallets list|add|rename|remove|next-name   Inspect and edit cached wallets
//   - domains list|prune                         Inspect cached domains, drop unowned ones
//   - transactions list                          Show cached transactions
//   - signatures check|purge                     Inspect profile signatures, revoke expired
//   - minting list                               Show domains waiting for their mint
//   - cache clear                                Reset every cache on this device
//
// # Implementation
//
// The root command loads the configuration, opens the vaults and the
// preferences database and builds every cache once before any subcommand
// runs. The graph is closed after the subcommand returns so queued writes
// are flushed.
package commands
