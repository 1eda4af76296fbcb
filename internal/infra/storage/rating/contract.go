package rating

import "github.com/m04kA/SMC-GigBookingService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
