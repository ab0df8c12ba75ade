package notify

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.BrazilianPortuguese

	message.SetString(lang, "order.notify.generic.title", "Atualização de pedido")
	message.SetString(lang, "order.notify.generic.body", "Um dos seus pedidos tem um novo status.")

	message.SetString(lang, "order.notify.customer.PREPARING.title", "Pedido confirmado")
	message.SetString(lang, "order.notify.customer.PREPARING.body", "O vendedor está preparando seus itens.")
	message.SetString(lang, "order.notify.customer.DELIVERING.title", "Pedido a caminho")
	message.SetString(lang, "order.notify.customer.DELIVERING.body", "Seus itens foram entregues à transportadora.")
	message.SetString(lang, "order.notify.customer.DELIVERED.title", "Pedido entregue")
	message.SetString(lang, "order.notify.customer.DELIVERED.body", "Seus itens foram entregues. Confirme o recebimento para concluir o pedido.")
	message.SetString(lang, "order.notify.customer.COMPLETED.title", "Pedido concluído")
	message.SetString(lang, "order.notify.customer.COMPLETED.body", "Obrigado pela sua compra.")
	message.SetString(lang, "order.notify.customer.CANCELLED.title", "Pedido cancelado")
	message.SetString(lang, "order.notify.customer.CANCELLED.body", "Seu pedido foi cancelado. %s foi devolvido à sua carteira.")
	message.SetString(lang, "order.notify.customer.RETURN_REQUESTED.title", "Devolução solicitada")
	message.SetString(lang, "order.notify.customer.RETURN_REQUESTED.body", "Sua solicitação de devolução foi enviada ao vendedor.")
	message.SetString(lang, "order.notify.customer.RETURN_APPROVED.title", "Devolução aprovada")
	message.SetString(lang, "order.notify.customer.RETURN_APPROVED.body", "O vendedor aprovou sua devolução. Envie os itens de volta.")
	message.SetString(lang, "order.notify.customer.RETURN_REJECTED.title", "Devolução recusada")
	message.SetString(lang, "order.notify.customer.RETURN_REJECTED.body", "O vendedor recusou sua solicitação de devolução.")
	message.SetString(lang, "order.notify.customer.RETURNED.title", "Devolução concluída")
	message.SetString(lang, "order.notify.customer.RETURNED.body", "Sua devolução foi recebida pelo vendedor.")

	message.SetString(lang, "order.notify.seller.PENDING.title", "Novo pedido")
	message.SetString(lang, "order.notify.seller.PENDING.body", "Você tem um novo pedido aguardando confirmação.")
	message.SetString(lang, "order.notify.seller.CANCELLED.title", "Pedido cancelado")
	message.SetString(lang, "order.notify.seller.CANCELLED.body", "O cliente cancelou este pedido. O estoque reservado foi restaurado.")
	message.SetString(lang, "order.notify.seller.COMPLETED.title", "Pedido concluído")
	message.SetString(lang, "order.notify.seller.COMPLETED.body", "O cliente confirmou o recebimento. Sua receita foi creditada.")
	message.SetString(lang, "order.notify.seller.RETURN_REQUESTED.title", "Devolução solicitada")
	message.SetString(lang, "order.notify.seller.RETURN_REQUESTED.body", "O cliente solicitou uma devolução. Avalie e responda.")
	message.SetString(lang, "order.notify.seller.RETURNED.title", "Devolução concluída")
	message.SetString(lang, "order.notify.seller.RETURNED.body", "Os itens devolvidos foram marcados como recebidos.")
}
