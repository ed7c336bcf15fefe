package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
)

//go:embed *.sql
var files embed.FS

// Names возвращает имена файлов миграций в порядке применения
func Names() ([]string, error) {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Apply последовательно выполняет все миграции.
// Файлы написаны идемпотентно, поэтому повторный запуск безопасен.
// Запрос без аргументов lib/pq отправляет простым протоколом, несколько команд в файле допустимы
func Apply(ctx context.Context, db dbmetrics.DBExecutor) error {
	names, err := Names()
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}

	for _, name := range names {
		body, err := files.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := db.ExecContext(ctx, string(body)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
	}

	return nil
}
