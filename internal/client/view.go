package client

import (
	"fmt"
	"io"
	"strconv"

	"campus-market/internal/api"
	"campus-market/internal/upload"

	"github.com/jedib0t/go-pretty/v6/table"
)

// 空列表時顯示的文字
const (
	EmptyProducts     = "No products found in this category."
	EmptyTransactions = "No transactions found."
	noDescription     = "No description provided"
	loginToBuy        = "Login to buy this product"
)

const dateLayout = "2006-01-02"

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

// RenderProducts 商品表格；loggedIn 決定購買提示
func RenderProducts(w io.Writer, products []api.ProductResponse, loggedIn bool) {
	if len(products) == 0 {
		fmt.Fprintln(w, EmptyProducts)
		return
	}
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Title", "Description", "Price", "Category", "Seller", "Image", ""})
	for _, p := range products {
		desc := noDescription
		if p.Description != nil && *p.Description != "" {
			desc = *p.Description
		}
		hint := loginToBuy
		if loggedIn {
			hint = "buy " + strconv.Itoa(p.ID)
		}
		t.AppendRow(table.Row{
			p.ID,
			p.Title,
			desc,
			"ZMW " + FormatPrice(p.Price),
			p.Category,
			p.SellerName,
			upload.URL(p.ImagePath),
			hint,
		})
	}
	t.Render()
}

func RenderTransactions(w io.Writer, txs []api.TransactionResponse) {
	if len(txs) == 0 {
		fmt.Fprintln(w, EmptyTransactions)
		return
	}
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Product", "Amount", "Date", "Status"})
	for _, tx := range txs {
		t.AppendRow(table.Row{
			tx.ID,
			tx.ProductTitle,
			"ZMW " + FormatPrice(tx.Amount),
			tx.CreatedAt.Local().Format(dateLayout),
			tx.Status,
		})
	}
	t.Render()
}

// RenderConfirmation 購買確認畫面
func RenderConfirmation(w io.Writer, c Confirmation) {
	t := newTable(w)
	t.AppendRows([]table.Row{
		{"Product", c.Title},
		{"Price", "ZMW " + FormatPrice(c.Price)},
		{"Seller", c.SellerName},
		{"Seller phone", c.SellerPhone},
	})
	t.Render()
}

// RenderUser 顯示目前登入的使用者
func RenderUser(w io.Writer, u *api.UserResponse) {
	if u == nil {
		fmt.Fprintln(w, "Not logged in.")
		return
	}
	t := newTable(w)
	t.AppendRows([]table.Row{
		{"ID", u.ID},
		{"Student ID", u.StudentID},
		{"Name", u.Name},
		{"Phone", u.PhoneNumber},
		{"University", u.University},
	})
	t.Render()
}
