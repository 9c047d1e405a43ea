// Package cmdrun runs the typedcsv commands on a validated config.
//
// Every run function builds the parser from the config, reads its sources
// line by line and logs bad lines through the logger carried by the context.
// They return the process exit code next to any error that stopped the run.
package cmdrun
