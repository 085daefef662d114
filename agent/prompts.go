package main

const MenuToolName = "menu_lookup"

var MenuToolDescription = `Answers questions about the restaurant menu.
Input is the customer's question in plain English, for example:
- "show me burgers"
- "dishes under 500" or "mains between 1,000 and 2,000"
- "price of club sandwich"
- "something with basil"
Add "pdf" or "menu card" to also generate a printable menu card of the whole menu.
The output is markdown listing the matching dishes with their prices.`
