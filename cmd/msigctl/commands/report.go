package commands

import (
	"io"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/olekukonko/tablewriter"

	"msigctl/internal/domain"
	"msigctl/internal/services/dispatch"
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetHeader(header)
	t.SetAutoWrapText(false)
	t.SetAutoFormatHeaders(false)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	t.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	t.SetBorder(false)
	return t
}

// renderReport prints one row per attempted id.
func renderReport(w io.Writer, rep dispatch.Report) {
	if rep.Kind == domain.ActionCheckStatus {
		renderRecords(w, rep)
		return
	}
	t := newTable(w, "ID", "STATUS", "TX", "NOTE")
	for _, o := range rep.Outcomes {
		if o.Err != nil {
			t.Append([]string{o.ID.String(), "failed", "", o.Err.Error()})
			continue
		}
		t.Append([]string{o.ID.String(), string(o.Result.Status), hashCell(o.Result.TxHash), o.Result.Note})
	}
	t.Render()
}

func renderRecords(w io.Writer, rep dispatch.Report) {
	t := newTable(w, "ID", "EXECUTED", "CONFIRMATIONS", "DESTINATION", "VALUE", "CONFIRMED BY", "NOTE")
	for _, o := range rep.Outcomes {
		r := o.Result.Record
		if o.Err != nil || r == nil {
			note := o.Result.Note
			if o.Err != nil {
				note = o.Err.Error()
			}
			t.Append([]string{o.ID.String(), "", "", "", "", "", note})
			continue
		}
		value := "0"
		if r.Value != nil {
			value = r.Value.String()
		}
		t.Append([]string{
			o.ID.String(),
			strconv.FormatBool(r.Executed),
			strconv.FormatUint(r.Confirmations, 10) + "/" + strconv.FormatUint(r.Required, 10),
			r.Destination.Hex(),
			value,
			joinAddresses(r.ConfirmedBy),
			o.Result.Note,
		})
	}
	t.Render()
}

func renderOwners(w io.Writer, set domain.OwnerSet) {
	t := newTable(w, "#", "OWNER")
	for i, o := range set.Owners {
		t.Append([]string{strconv.Itoa(i + 1), o.Hex()})
	}
	t.SetFooter([]string{"", "required " + strconv.FormatUint(set.Required, 10) + " of " + strconv.Itoa(len(set.Owners))})
	t.Render()
}

func hashCell(h common.Hash) string {
	if h == (common.Hash{}) {
		return ""
	}
	return h.Hex()
}

func joinAddresses(addrs []common.Address) string {
	parts := make([]string, len(addrs))
	for i, a := range addrs {
		parts[i] = a.Hex()
	}
	return strings.Join(parts, ",")
}
