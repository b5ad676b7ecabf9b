package appointment

import "github.com/m04kA/SMC-AppointmentEngine/pkg/dbmetrics"

// Переиспользуем интерфейс из dbmetrics: *dbmetrics.DB и транзакция из контекста
type DBExecutor = dbmetrics.DBExecutor
