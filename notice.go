package tabbase

import (
	"errors"

	"github.com/dracory/tabbase/internal/crudview"
	"github.com/dracory/tabbase/internal/store"
	"github.com/dracory/tabbase/shared/constants"
)

const (
	msgSelectForDelete = "Пожалуйста, выберите строку для удаления."
	msgSelectForEdit   = "Пожалуйста, выберите строку для изменения."
	msgModalOpen       = "Сначала закройте открытую форму."
	msgUnknownColumn   = "Неизвестный столбец."
	msgRowOutOfRange   = "Строка не найдена. Обновите таблицу и повторите выбор."
	msgReportPath      = "Недопустимый путь отчета. Укажите имя файла внутри каталога отчетов."
)

// noticeFor maps the outcome of an action to a dialog shown after the
// redirect. ok is false when nothing should be shown.
func noticeFor(action string, err error) (level, message string, ok bool) {
	var se *crudview.StoreError

	switch {
	case err == nil, errors.Is(err, crudview.ErrNotConfirmed):
		return "", "", false
	case errors.Is(err, crudview.ErrNoSelection):
		if action == constants.ActionEdit {
			return constants.NoticeWarning, msgSelectForEdit, true
		}
		return constants.NoticeWarning, msgSelectForDelete, true
	case errors.Is(err, crudview.ErrModalOpen):
		return constants.NoticeWarning, msgModalOpen, true
	case errors.Is(err, store.ErrUnknownColumn):
		return constants.NoticeWarning, msgUnknownColumn, true
	case errors.Is(err, crudview.ErrRowOutOfRange):
		return constants.NoticeWarning, msgRowOutOfRange, true
	case errors.Is(err, crudview.ErrReportPath):
		return constants.NoticeError, msgReportPath, true
	case errors.As(err, &se):
		return constants.NoticeError, "Ошибка базы данных: " + se.Err.Error(), true
	default:
		return constants.NoticeError, err.Error(), true
	}
}
