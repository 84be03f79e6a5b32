// Package report implements the engine's Sink: where solved grids go.
//
// ConsoleSink renders throttled solutions to a writer with running
// statistics, StoreSink records them in the history database, and
// MultiSink fans a report out to several sinks. All of them are safe for
// concurrent Report calls.
package report
