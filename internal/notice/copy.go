package notice

import (
	"strings"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Catalog keys shared by the site and the admin pages.
const (
	RSVPSent         = "rsvp.sent"
	RSVPFailed       = "rsvp.failed"
	RSVPInvalid      = "rsvp.invalid"
	AdminWelcome     = "admin.welcome"
	AdminDenied      = "admin.denied"
	AdminUnreachable = "admin.unreachable"
	AdminEmptyKey    = "admin.empty_key"
)

// Lang is the language of all copy on the site.
var Lang = language.Russian

func init() {
	set := func(key, text string) {
		message.SetString(Lang, key, text)
	}

	set(RSVPSent+".title", "Спасибо за ответ! 💕")
	set(RSVPSent+".description", "Мы получили вашу информацию и очень ждём вас на нашем празднике!")
	set(RSVPFailed+".title", "Ошибка")
	set(RSVPFailed+".description", "Не удалось отправить ответ. Попробуйте снова.")
	set(RSVPInvalid+".title", "Ошибка")
	set(RSVPInvalid+".description", "Пожалуйста, заполните имя, телефон и выберите ответ.")

	set(AdminWelcome+".title", "Вход выполнен")
	set(AdminWelcome+".description", "Добро пожаловать в админ-панель!")
	set(AdminDenied+".title", "Ошибка")
	set(AdminDenied+".description", "Неверный ключ доступа")
	set(AdminUnreachable+".title", "Ошибка")
	set(AdminUnreachable+".description", "Не удалось подключиться к серверу")
	set(AdminEmptyKey+".title", "Ошибка")
	set(AdminEmptyKey+".description", "Введите ключ доступа")

	plurals := map[string][4]string{
		"countdown.days":    {"день", "дня", "дней", "дня"},
		"countdown.hours":   {"час", "часа", "часов", "часа"},
		"countdown.minutes": {"минута", "минуты", "минут", "минуты"},
		"countdown.seconds": {"секунда", "секунды", "секунд", "секунды"},
	}
	for key, forms := range plurals {
		err := message.Set(Lang, key, plural.Selectf(1, "%d",
			plural.One, "%d "+forms[0],
			plural.Few, "%d "+forms[1],
			plural.Many, "%d "+forms[2],
			plural.Other, "%d "+forms[3],
		))
		if err != nil {
			panic(err)
		}
	}
}

// Text resolves a catalog key; unknown keys come back unchanged.
func Text(key string) string {
	return message.NewPrinter(Lang).Sprintf(key)
}

// Count renders n with the plural form of a countdown unit, e.g. "5 дней".
func Count(key string, n int) string {
	return message.NewPrinter(Lang).Sprintf(key, n)
}

// UnitLabel is the word part of Count, e.g. "дней".
func UnitLabel(key string, n int) string {
	fields := strings.Fields(Count(key, n))
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
