package i18n

var ptBRCatalog = NewCatalog("pt-BR", map[Code]string{
	// Order intake errors
	CodeOrderItemsEmpty:          "O pedido deve conter pelo menos um item",
	CodeOrderTooManyItems:        "O pedido não pode conter mais de {{.Limit}} produtos distintos",
	CodeOrderQuantityInvalid:     "A quantidade do item deve ser maior que zero",
	CodeOrderProductUnavailable:  "Produtos indisponíveis ou não verificados: {{.ProductIDs}}",
	CodeOrderInsufficientStock:   "Estoque insuficiente para o produto {{.ProductName}}",
	CodeOrderDestinationNotFound: "Endereço de entrega não encontrado para este cliente",

	// Ownership errors
	CodeOrderNotOwned:    "Você não é o dono deste pedido",
	CodeComboNotOwned:    "Você não é o vendedor desta remessa",
	CodeActorRoleInvalid: "O papel da sua conta não permite esta operação",

	// Status transition errors
	CodeComboUnknownStatus:           "Status de pedido desconhecido {{.Status}}",
	CodeComboSelfTransition:          "A remessa já está no status {{.Status}}",
	CodeComboInvalidStatusTransition: "Não é possível mover a remessa de {{.FromStatus}} para {{.ToStatus}}; próximos status válidos: {{.ValidNext}}",
	CodeComboDeliveryTypeRequired:    "Um tipo de entrega é obrigatório para iniciar a entrega",
	CodeComboTrackingCodeRequired:    "Um código de rastreio é obrigatório para entrega {{.DeliveryType}}",
	CodeComboEvidenceRequired:        "Pelo menos uma imagem de comprovação de entrega é obrigatória",
	CodeComboCancelDisallowed:        "Uma remessa no status {{.Status}} não pode mais ser cancelada",

	// Settlement errors
	CodeRevenueAlreadyRealized: "A receita desta remessa já foi liquidada",
	CodeVoucherRejected:        "Cupom rejeitado: {{.Reason}}",

	// Auth/storage errors
	CodeAuthTokenInvalid: "Token de acesso ausente ou inválido",
	CodeNotFound:         "O registro solicitado não foi encontrado",
	CodeActionFailed:     "A operação não pôde ser concluída; nada foi alterado",
})

func init() {
	RegisterCatalog("pt-BR", ptBRCatalog)
}
