// Package database handles the optional MySQL connection used by the run journal.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) that builds
// the DSN from the application's configuration, applies connection timeouts
// and verifies the connection with a ping.
//
// # Usage
//
//	if cfg.Database.Enabled {
//	    db, err := database.Connect(cfg.Database)
//	    if err != nil {
//	        log.Warn("Run journal disabled", zap.Error(err))
//	    }
//	}
package database
