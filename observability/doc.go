// Package observability defines the Observer hook shared by the odbcerr
// packages.
//
// sqlerr, and the driver adapters (postgres, mariadb, sqlite) accept an
// optional Observer and report each error construction, SQLSTATE probe and
// driver error translation as an OperationContext. The metrics package ships
// a Prometheus-backed Observer; applications can supply their own:
//
//	type logObserver struct{ log logger.Logger }
//
//	func (o logObserver) ObserveOperation(ctx observability.OperationContext) {
//		o.log.Debug("sql error constructed", ctx.Error, map[string]interface{}{
//			"operation": ctx.Operation,
//			"function":  ctx.Resource,
//		})
//	}
//
//	factory := sqlerr.NewFactory(cfg, driver).WithObserver(logObserver{log})
//
// Use Multi to attach more than one observer.
package observability
