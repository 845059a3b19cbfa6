// Package contract renders Brazilian service agreement drafts for
// freelancers closing a deal with a discovered business.
package contract

import (
	"fmt"
	"time"
)

// Contract is a rendered agreement draft with its generation metadata.
type Contract struct {
	Text         string
	Niche        string
	Experience   string
	ContractType string
	GeneratedAt  time.Time
}

// Generate renders the template matching contractType. Unknown types fall
// back to the basic agreement.
func Generate(niche, experience, contractType string, now time.Time) Contract {
	if contractType == "" {
		contractType = "basic"
	}

	var text string
	switch contractType {
	case "development":
		text = developmentTemplate(niche, now)
	case "marketing":
		text = marketingTemplate(now)
	default:
		contractType = "basic"
		text = basicTemplate(niche, now)
	}

	return Contract{
		Text:         text,
		Niche:        niche,
		Experience:   experience,
		ContractType: contractType,
		GeneratedAt:  now,
	}
}

// ptBRDate formats dates the way Brazilian contracts are dated.
func ptBRDate(now time.Time) string {
	return now.Format("02/01/2006")
}

func roleForNiche(niche string) string {
	switch niche {
	case "web_designer":
		return "Web Designer"
	case "developer":
		return "Desenvolvedor"
	default:
		return "Especialista em Marketing"
	}
}

func basicTemplate(niche string, now time.Time) string {
	return fmt.Sprintf(`CONTRATO DE PRESTAÇÃO DE SERVIÇOS

CONTRATANTE: [NOME DA EMPRESA]
CONTRATADO: %s

CLÁUSULA PRIMEIRA - DO OBJETO
O presente contrato tem por objeto a prestação de serviços de %s por parte do CONTRATADO.

CLÁUSULA SEGUNDA - DO PRAZO
O prazo para execução dos serviços será combinado conforme escopo a ser definido.

CLÁUSULA TERCEIRA - DO VALOR
O valor dos serviços será acordado conforme complexidade e prazo.

São Paulo, %s

_______________________________________
CONTRATANTE

_______________________________________
CONTRATADO`, roleForNiche(niche), niche, ptBRDate(now))
}

func developmentTemplate(niche string, now time.Time) string {
	developer := "Prestador de Serviços"
	if niche == "developer" {
		developer = "Desenvolvedor"
	}
	return fmt.Sprintf(`CONTRATO DE DESENVOLVIMENTO DE SOFTWARE

CLIENTE: [NOME DA EMPRESA]
DESENVOLVEDOR: %s

1. ESCOPO DO PROJETO
Desenvolvimento de solução digital conforme especificações técnicas.

2. PRAZOS E ENTREGAS
- Entrega em fases conforme cronograma aprovado
- Revisões e ajustes inclusos

3. PROPRIEDADE INTELECTUAL
Todo código fonte desenvolvido será de propriedade do CLIENTE após pagamento integral.

4. GARANTIA
90 dias de garantia para correção de bugs críticos.

%s`, developer, ptBRDate(now))
}

func marketingTemplate(now time.Time) string {
	return fmt.Sprintf(`CONTRATO DE MARKETING DIGITAL

CONTRATANTE: [NOME DA EMPRESA]
CONTRATADO: Especialista em Marketing Digital

OBJETIVOS:
- Aumento de visibilidade online
- Geração de leads qualificados
- Gestão de redes sociais

MÉTRICAS DE DESEMPENHO:
- Relatórios mensais de desempenho
- Ajustes estratégicos conforme resultados

INVESTIMENTO:
Valor mensal conforme pacote selecionado.

São Paulo, %s`, ptBRDate(now))
}
