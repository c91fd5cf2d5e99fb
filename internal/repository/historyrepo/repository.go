// Package historyrepo implements domain.HistoryRepository over a JSON file,
// badger, redis and PostgreSQL.
package historyrepo

import "golibrary/internal/domain"

var (
	_ domain.HistoryRepository = (*FileRepository)(nil)
	_ domain.HistoryRepository = (*BadgerRepository)(nil)
	_ domain.HistoryRepository = (*RedisRepository)(nil)
	_ domain.HistoryRepository = (*PostgresRepository)(nil)
)
