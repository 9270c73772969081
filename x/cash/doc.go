/*
Package cash keeps the balance of every address in the single native
currency. Other extensions never write wallets directly: every balance
change goes through the Controller, which refuses to move zero, to
overdraw a wallet or to overflow one.
*/
package cash
