package psqlbuilder

import (
	sq "github.com/Masterminds/squirrel"
)

// Пакет фиксирует плейсхолдеры $1, $2, ... для Postgres,
// чтобы репозитории не настраивали их вручную.

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Select возвращает SELECT-билдер с долларовыми плейсхолдерами.
func Select(columns ...string) sq.SelectBuilder {
	return builder.Select(columns...)
}

// Insert возвращает INSERT-билдер с долларовыми плейсхолдерами.
func Insert(into string) sq.InsertBuilder {
	return builder.Insert(into)
}

// Update возвращает UPDATE-билдер с долларовыми плейсхолдерами.
func Update(table string) sq.UpdateBuilder {
	return builder.Update(table)
}

// Delete возвращает DELETE-билдер с долларовыми плейсхолдерами.
func Delete(from string) sq.DeleteBuilder {
	return builder.Delete(from)
}
