package httperr

import (
	"golang.org/x/text/language"
)

var supported = []language.Tag{
	language.English,
	language.BrazilianPortuguese,
}

var matcher = language.NewMatcher(supported)

var catalog = map[string][2]string{
	"missing_customer":      {"You must be signed in to book.", "É preciso entrar para agendar."},
	"missing_business":      {"Business is required.", "Empresa obrigatória."},
	"missing_service":       {"Service is required.", "Serviço obrigatório."},
	"missing_date":          {"Date is required.", "Data obrigatória."},
	"missing_time":          {"Time is required.", "Hora obrigatória."},
	"invalid_date":          {"Invalid date.", "Data inválida."},
	"invalid_time":          {"Invalid time.", "Hora inválida."},
	"date_in_past":          {"Dates in the past cannot be booked.", "Não é possível agendar em datas passadas."},
	"employee_required":     {"This service requires choosing a staff member.", "Este serviço exige escolher um profissional."},
	"slot_taken":            {"This time is already taken. Please choose another one.", "Este horário já está ocupado. Escolha outro."},
	"outside_opening_hours": {"The chosen time is outside opening hours.", "O horário escolhido está fora do expediente."},
	"service_unavailable":   {"This service is not available for booking.", "Este serviço não está disponível para agendamento."},
	"invalid_credentials":   {"Invalid e-mail or password.", "E-mail ou senha inválidos."},
	"invalid_email":         {"Invalid e-mail address.", "Endereço de e-mail inválido."},
	"invalid_timezone":      {"Unknown timezone.", "Fuso horário desconhecido."},
	"invalid_state":         {"This record cannot change to that status.", "Este registro não pode mudar para esse status."},
	"invalid_request":       {"Invalid request data.", "Dados inválidos."},
	"invalid_hours":         {"Invalid opening hours.", "Horário de funcionamento inválido."},
	"duplicate_day":         {"Only one opening-hour entry per weekday is allowed.", "Só é permitido um horário por dia da semana."},
	"invalid_range":         {"Start date must not be after end date.", "A data inicial não pode ser posterior à final."},
	"invalid_rating":        {"Rating must be between 1 and 5.", "A nota deve estar entre 1 e 5."},
	"review_not_allowed":    {"Only completed appointments can be reviewed, once.", "Só agendamentos concluídos podem ser avaliados, uma vez."},
	"business_not_found":    {"Business not found.", "Empresa não encontrada."},
	"service_not_found":     {"Service not found.", "Serviço não encontrado."},
	"employee_not_found":    {"Staff member not found.", "Profissional não encontrado."},
	"absence_not_found":     {"Absence not found.", "Ausência não encontrada."},
	"user_not_found":        {"User not found.", "Usuário não encontrado."},
	"appointment_not_found": {"Appointment not found.", "Agendamento não encontrado."},
	"business_exists":       {"This account already owns a business.", "Esta conta já possui uma empresa."},
	"email_exists":          {"E-mail already registered.", "E-mail já cadastrado."},
	"delete_business_first": {"Delete your business before deleting the account.", "Exclua sua empresa antes de excluir a conta."},
	"not_business_owner":    {"Only business owners can do this.", "Apenas donos de empresa podem fazer isso."},
	"not_customer":          {"Only customers can book services.", "Apenas clientes podem agendar serviços."},
	"storage_disabled":      {"Image uploads are not configured.", "Envio de imagens não configurado."},
	"invalid_image":         {"Unsupported or corrupt image.", "Imagem inválida ou não suportada."},
	"upstream":              {"Something went wrong on our side. Please try again.", "Algo deu errado. Tente novamente."},
}

// Message returns the localized text for code, picking the best language
// from an Accept-Language header value.
func Message(code, acceptLanguage string) string {
	idx := languageIndex(acceptLanguage)
	if m, ok := catalog[code]; ok {
		return m[idx]
	}
	return catalog["upstream"][idx]
}

func languageIndex(acceptLanguage string) int {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return 0
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return 0
	}
	return idx
}
