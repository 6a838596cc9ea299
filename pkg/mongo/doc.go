// Package mongo opens MongoDB connections from environment configuration.
//
//	var cfg mongo.Config
//	config.MustLoad(&cfg)
//
//	db, err := mongo.NewWithDatabase(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer db.Client().Disconnect(context.Background())
//
//	ready := mongo.Healthcheck(db)
//
// New retries the initial connect and ping with a fixed interval; errors
// wrap ErrFailedToConnectToMongo.
package mongo
