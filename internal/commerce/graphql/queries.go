package graphql

const pricesFragment = `
fragment Prices on Prices {
  price { value currencyCode }
  basePrice { value currencyCode }
  salePrice { value currencyCode }
  retailPrice { value currencyCode }
}`

const productQuery = `
query getProduct($productId: Int!, $optionValueIds: [OptionValueId!], $imageWidth: Int!) {
  site {
    product(entityId: $productId, optionValueIds: $optionValueIds) {
      entityId
      name
      path
      sku
      upc
      condition
      plainTextDescription
      warranty
      minPurchaseQuantity
      maxPurchaseQuantity
      brand { name }
      availabilityV2 { status description }
      prices { ...Prices }
      images {
        edges { node { url(width: $imageWidth) altText isDefault } }
      }
      productOptions(first: 50) {
        edges {
          node {
            __typename
            entityId
            displayName
            isRequired
            ... on MultipleChoiceOption {
              values(first: 50) {
                edges { node { entityId label isDefault } }
              }
            }
          }
        }
      }
      categories(first: 1) {
        edges {
          node {
            name
            path
            breadcrumbs(depth: 10) {
              edges { node { name path } }
            }
          }
        }
      }
    }
  }
}` + pricesFragment

const relatedProductsQuery = `
query getRelatedProducts($productId: Int!, $optionValueIds: [OptionValueId!], $first: Int!, $imageWidth: Int!) {
  site {
    product(entityId: $productId, optionValueIds: $optionValueIds) {
      relatedProducts(first: $first) {
        edges {
          node {
            entityId
            name
            path
            brand { name }
            defaultImage { url(width: $imageWidth) altText }
            prices { ...Prices }
          }
        }
      }
    }
  }
}` + pricesFragment

const reviewSummaryQuery = `
query getReviewSummary($productId: Int!) {
  site {
    product(entityId: $productId) {
      reviewSummary { numberOfReviews summationOfRatings }
    }
  }
}`

const reviewsQuery = `
query getReviews($productId: Int!, $first: Int!) {
  site {
    product(entityId: $productId) {
      reviews(first: $first) {
        edges {
          node {
            entityId
            author { name }
            title
            text
            rating
            createdAt { utc }
          }
        }
      }
    }
  }
}`

const cartFragment = `
fragment CartDetails on Cart {
  entityId
  amount { value currencyCode }
  lineItems {
    physicalItems { ...LineItem }
    digitalItems { ...LineItem }
  }
}
fragment LineItem on CartLineItem {
  entityId
  productEntityId
  name
  url
  imageUrl
  quantity
  listPrice { value currencyCode }
  selectedOptions {
    entityId
    name
    ... on CartSelectedMultipleChoiceOption { value valueEntityId }
  }
}`

const cartQuery = `
query getCart($cartId: String!) {
  site {
    cart(entityId: $cartId) { ...CartDetails }
  }
}` + cartFragment

const createCartMutation = `
mutation createCart($input: CreateCartInput!) {
  cart {
    createCart(input: $input) {
      cart { ...CartDetails }
    }
  }
}` + cartFragment

const addCartLineItemsMutation = `
mutation addCartLineItems($input: AddCartLineItemsInput!) {
  cart {
    addCartLineItems(input: $input) {
      cart { ...CartDetails }
    }
  }
}` + cartFragment

const deleteCartLineItemMutation = `
mutation deleteCartLineItem($input: DeleteCartLineItemInput!) {
  cart {
    deleteCartLineItem(input: $input) {
      cart { ...CartDetails }
    }
  }
}` + cartFragment
